package vault

import "fmt"

// ConfigError reports an unusable vault root or index layout. It is fatal at
// startup; there is no degraded mode for an invalid root.
type ConfigError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Msg, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Msg, e.Path)
}

func (e *ConfigError) Unwrap() error { return e.Err }
