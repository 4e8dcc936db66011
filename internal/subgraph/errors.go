package subgraph

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an unsupported or malformed chain identifier.
type ConfigurationError struct {
	ChainID   string
	Reason    string
	Supported []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("chain id %q %s; supported chain ids: %s",
		e.ChainID, e.Reason, strings.Join(e.Supported, ", "))
}

// RemoteError reports a failed subgraph request: transport failure, non-2xx
// status, GraphQL errors, or a response without the expected data.
type RemoteError struct {
	Op         string
	StatusCode int
	Messages   []string
	Err        error
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if len(e.Messages) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Messages, "; "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
