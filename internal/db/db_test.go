package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashJobDescription(t *testing.T) {
	// sha256("abc")
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		HashJobDescription("abc"))
	assert.NotEqual(t, HashJobDescription("Go developer"), HashJobDescription("go developer"))
}

func TestNotFoundError(t *testing.T) {
	var err error = &NotFoundError{Entity: "resume", Key: "123"}
	assert.Equal(t, "resume not found: 123", err.Error())

	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, "resume", nf.Entity)
}
