package booking

import (
	"fmt"
	"time"

	"github.com/speps/go-hashids/v2"
)

// CodeGenerator produces the short codes customers present as a QR at
// check-in. Codes are salted hashids over the venue, day and start slot plus
// a time nonce, so a cancelled-and-rebooked slot never reuses a code.
type CodeGenerator struct {
	h *hashids.HashID
}

func NewCodeGenerator(salt string) (*CodeGenerator, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 8
	// no 0/O/1/I, codes get read out loud at the gate
	hd.Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("codegen init: %w", err)
	}
	return &CodeGenerator{h: h}, nil
}

func (g *CodeGenerator) Generate(venueID int64, slot TimeRange) (string, error) {
	nonce := int(time.Now().UnixNano() % 1_000_000)
	code, err := g.h.Encode([]int{
		int(venueID),
		int(slot.Date.Unix() / 86400),
		slot.Start,
		nonce,
	})
	if err != nil {
		return "", fmt.Errorf("codegen encode: %w", err)
	}
	return "TURF-" + code, nil
}
