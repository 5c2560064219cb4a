package types

import "errors"

// Config holds the parameters for Store.Attach.
type Config struct {
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ErrDataDirEmpty reports a Config with no data directory.
var ErrDataDirEmpty = errors.New("data dir must not be empty")

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}
