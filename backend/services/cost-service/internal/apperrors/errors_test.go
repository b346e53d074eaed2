package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	cases := map[string]struct {
		err  error
		want string
	}{
		"validation":         {Validation("wattage", "must be a number"), CodeValidation},
		"not found":          {NotFound(EntityDevice, "d1"), CodeNotFound},
		"upstream":           {Upstream("device lookup", cause), CodeUpstream},
		"computation":        {&ComputationError{Reason: "NaN"}, CodeComputation},
		"wrapped validation": {fmt.Errorf("create: %w", Validation("", "bad")), CodeValidation},
		"plain":              {cause, CodeInternal},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Code(tc.err))
		})
	}
}

func TestUpstreamUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream("repository get", cause)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Upstream("noop", nil))
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, `record "r-1" not found`, NotFound(EntityRecord, "r-1").Error())
	assert.Equal(t, "device not found", NotFound(EntityDevice, "").Error())
}
