package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventErrorWithCause(t *testing.T) {
	e := Warning(CodeMissingSpan, "backend", "exit for unknown span").WithCause(errors.New("boom"))
	require.NotEmpty(t, e.Error())
	require.Error(t, e.Cause)
}

func TestEventFieldsIncludesMetadata(t *testing.T) {
	e := Warning(CodeUnclosedSpans, "backend", "shutdown").WithMetadata("unclosed_spans", 3)
	fields := e.Fields()
	require.Equal(t, CodeUnclosedSpans, fields["diag_code"])
	require.Equal(t, 3, fields["unclosed_spans"])
}
