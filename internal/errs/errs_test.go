package errs_test

import (
	"errors"
	"testing"

	"github.com/loomaudio/graph/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrOnEmptyListIsNil(t *testing.T) {
	var l errs.List
	assert.NoError(t, l.Err())
}

func TestAddSkipsNilErrors(t *testing.T) {
	var l errs.List
	l = l.Add(nil)
	assert.Empty(t, l)
}

func TestAddAccumulatesAndErrJoinsMessages(t *testing.T) {
	var l errs.List
	l = l.Add(errors.New("first"))
	l = l.Add(errors.New("second"))
	require.Len(t, l, 2)
	err := l.Err()
	require.Error(t, err)
	assert.Equal(t, "first; second", err.Error())
}
