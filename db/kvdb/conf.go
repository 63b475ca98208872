package kvdb

import "fmt"

type Conf struct {
	Type string `json:"type"`
	Host string `json:"host"`
	Port int    `json:"port"`
	PW   string `json:"pw"`
	DB   int    `json:"db"`  // optional db number e.g. redis
	Key  string `json:"key"` // list key holding the records
}

func (c *Conf) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
