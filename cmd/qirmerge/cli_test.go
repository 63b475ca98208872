package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/api"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/pdfs"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/pdfs/pdfstest"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/sec"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeConfig(t *testing.T, root string, core map[string]any) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
	data, err := json.Marshal(core)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", ".core.json"), data, 0o600))
}

func TestVersionCmd(t *testing.T) {
	original := version
	version = "1.2.3"
	defer func() { version = original }()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "qirmerge version 1.2.3")
}

func TestMergeCmd(t *testing.T) {
	t.Setenv("PORT", "")
	dir := t.TempDir()
	body, err := json.Marshal(api.MergeRequestBody{
		ReportNo:  "R-9",
		Date:      "2024-03-01",
		QIRSource: api.SourceBody{Type: "base64", Value: base64.StdEncoding.EncodeToString(pdfstest.Pages(t, "base", 4))},
		Certificates: []api.CertificateBody{
			{Label: "Mill TC", Type: "base64", Value: base64.StdEncoding.EncodeToString(pdfstest.Pages(t, "mill", 3))},
			{Label: "Broken", Type: "base64", Value: "%%%"},
		},
	})
	require.NoError(t, err)
	request := filepath.Join(dir, "request.json")
	require.NoError(t, os.WriteFile(request, body, 0o600))
	out := filepath.Join(dir, "merged.pdf")

	stdout, err := execute(t, "merge", "--root", dir, "--request", request, "--out", out)
	require.NoError(t, err)

	assert.Contains(t, stdout, "wrote 8 pages to "+out)
	assert.Contains(t, stdout, "certificates: Mill TC")
	assert.Contains(t, stdout, "dropped Broken:")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	doc, err := pdfs.Load(data)
	require.NoError(t, err)
	assert.Equal(t, 8, doc.PageCount)
	sizes, err := pdfs.PageSizes(doc)
	require.NoError(t, err)
	assert.Len(t, sizes, 8)
}

func TestMergeCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing request", []string{"merge", "--root", dir, "--request", ""}, "--request is required"},
		{"unreadable request", []string{"merge", "--root", dir, "--request", filepath.Join(dir, "nope.json")}, "nope.json"},
		{"bad JSON", []string{"merge", "--root", dir, "--request", bad}, "bad.json"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("PORT", "")
	dir := t.TempDir()
	writeConfig(t, dir, map[string]any{"auth": map[string]any{"jwt_secret": "s3cret", "issuer": "qirmerge"}})

	out, err := execute(t, "token", "--root", dir, "--subject", "inspector-1", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := sec.ParseHMACSignedToken(strings.TrimSpace(out), []byte("s3cret"), "qirmerge")
	require.NoError(t, err)
	assert.Equal(t, "inspector-1", claims.Subject)
}

func TestTokenCmd_NoSecret(t *testing.T) {
	t.Setenv("PORT", "")
	_, err := execute(t, "token", "--root", t.TempDir())
	assert.ErrorContains(t, err, "jwt_secret")
}
