package types_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

func TestParseMaturityLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		wantKind types.MaturityKind
		wantErr  bool
	}{
		{"not applicable", -1, types.MaturityKindNotApplicable, false},
		{"not assessed", 0, types.MaturityKindNotAssessed, false},
		{"initial", 1, types.MaturityKindAssessed, false},
		{"optimized", 5, types.MaturityKindAssessed, false},
		{"above range", 7, 0, true},
		{"six", 6, 0, true},
		{"below sentinel", -2, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseMaturityLevel(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
				gt.B(t, errors.Is(err, types.ErrInvalidMaturityLevel)).True()
				return
			}
			gt.NoError(t, err)
			gt.V(t, got.Kind()).Equal(tt.wantKind)
			gt.V(t, got.Value()).Equal(tt.input)
		})
	}
}

func TestMaturityLevel_ZeroValueIsNotAssessed(t *testing.T) {
	var m types.MaturityLevel
	gt.B(t, m.IsNotAssessed()).True()
	gt.V(t, m.Value()).Equal(0)
	gt.V(t, m.Base()).Equal(0)
	gt.NoError(t, m.Validate())
}

func TestMaturityLevel_Base(t *testing.T) {
	gt.V(t, types.MustLevel(3).Base()).Equal(3)
	gt.V(t, types.NotApplicable().Base()).Equal(0)
	gt.V(t, types.NotAssessed().Base()).Equal(0)

	n, ok := types.NotApplicable().Number()
	gt.B(t, ok).False()
	gt.V(t, n).Equal(0)
}

func TestMaturityLevel_JSON(t *testing.T) {
	type holder struct {
		Level types.MaturityLevel `json:"level"`
	}

	t.Run("round trip keeps the wire integer", func(t *testing.T) {
		data, err := json.Marshal(holder{Level: types.NotApplicable()})
		gt.NoError(t, err)
		gt.S(t, string(data)).Equal(`{"level":-1}`)

		var h holder
		gt.NoError(t, json.Unmarshal([]byte(`{"level":4}`), &h))
		gt.V(t, h.Level).Equal(types.MustLevel(4))
	})

	t.Run("null decodes as not assessed", func(t *testing.T) {
		var h holder
		gt.NoError(t, json.Unmarshal([]byte(`{"level":null}`), &h))
		gt.B(t, h.Level.IsNotAssessed()).True()
	})

	t.Run("out of range fails loudly", func(t *testing.T) {
		var h holder
		err := json.Unmarshal([]byte(`{"level":7}`), &h)
		gt.Error(t, err)
		gt.B(t, errors.Is(err, types.ErrInvalidMaturityLevel)).True()
	})

	t.Run("non integer fails", func(t *testing.T) {
		var h holder
		gt.Error(t, json.Unmarshal([]byte(`{"level":"three"}`), &h))
		gt.Error(t, json.Unmarshal([]byte(`{"level":2.5}`), &h))
	})
}

func TestMaturityLevel_Label(t *testing.T) {
	gt.S(t, types.MustLevel(1).Label()).Equal("1 - Initial")
	gt.S(t, types.MustLevel(5).Label()).Equal("5 - Optimized")
	gt.S(t, types.NotApplicable().Label()).Equal("N/A")
	gt.S(t, types.NotAssessed().Label()).Equal("Not assessed")
}
