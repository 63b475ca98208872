package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/api"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/qir"
)

var mergeFlags struct {
	request string
	out     string
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge one request file offline and write the PDF",
	Long: `Runs the merge pipeline on a JSON request body, the same one POST /merge accepts.
Without --out the PDF is written to QIR-<reportNo>-<date>.pdf in the working directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if mergeFlags.request == "" {
			return errors.New("--request is required")
		}
		data, err := os.ReadFile(mergeFlags.request)
		if err != nil {
			return err
		}
		var body api.MergeRequestBody
		if err = json.Unmarshal(data, &body); err != nil {
			return fmt.Errorf("%s: %w", mergeFlags.request, err)
		}

		core, cancel, err := loadCore(cmd.Context())
		if err != nil {
			return err
		}
		defer cancel()

		ctx := qir.WithTrail(core.RootCtx, qir.NewTrail(""))
		res, err := core.NewMerger().Merge(ctx, body.ToRequest())
		if err != nil {
			return err
		}

		out := mergeFlags.out
		if out == "" {
			out = api.Filename(body.ReportNo, body.Date)
		}
		if err = os.WriteFile(out, res.Document.Bytes, 0o644); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d pages to %s\n", res.Document.PageCount, out)
		if labels := res.Plan.Labels(); labels != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "certificates: %s\n", labels)
		}
		for _, d := range res.Dropped {
			fmt.Fprintf(cmd.OutOrStdout(), "dropped %s: %s\n", d.Label, d.Reason)
		}
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVar(&mergeFlags.request, "request", "", "JSON request body file")
	mergeCmd.Flags().StringVar(&mergeFlags.out, "out", "", "output PDF file")
	rootCmd.AddCommand(mergeCmd)
}
