package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasFile(t *testing.T) {
	tests := []struct {
		name  string
		block *Block
		want  bool
	}{
		{"nil is empty", nil, false},
		{"empty state", &Block{State: EMPTY}, false},
		{"blk", &Block{State: BLK}, true},
		{"chg", &Block{State: CHG}, true},
		{"new", &Block{State: NEW}, true},
		{"rep", &Block{State: REP}, true},
		{"deleted", &Block{State: DELETED}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasFile(tt.block))
		})
	}
}

func TestHasInvalidParity(t *testing.T) {
	tests := []struct {
		name  string
		block *Block
		want  bool
	}{
		{"nil is empty", nil, false},
		{"empty state", &Block{State: EMPTY}, false},
		{"blk", &Block{State: BLK}, false},
		{"chg", &Block{State: CHG}, true},
		{"new", &Block{State: NEW}, true},
		{"rep", &Block{State: REP}, true},
		{"deleted", &Block{State: DELETED}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasInvalidParity(tt.block))
		})
	}
}

func TestHasHash(t *testing.T) {
	tests := []struct {
		name  string
		block *Block
		want  bool
	}{
		{"nil is empty", nil, false},
		{"empty state", &Block{State: EMPTY}, false},
		{"blk", &Block{State: BLK}, true},
		{"chg", &Block{State: CHG}, true},
		{"new has no prior hash", &Block{State: NEW}, false},
		{"rep", &Block{State: REP}, true},
		{"deleted", &Block{State: DELETED}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasHash(tt.block))
		})
	}
}

func TestBlockStateString(t *testing.T) {
	assert.Equal(t, "BLK", BLK.String())
	assert.Equal(t, "UNKNOWN", BlockState(99).String())
}
