package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestDMKey_Order_Independent(t *testing.T) {
	req := require.New(t)
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	req.Equal(DMKey(a, b), DMKey(b, a))
	req.Equal(a.String()+DMKeySeparator+b.String(), DMKey(b, a))
}

func TestDMKey_Is_Well_Formed(t *testing.T) {
	req := require.New(t)
	key := DMKey(uuid.New(), uuid.New())

	req.True(WellFormedDMKey(key))
	parts := strings.Split(key, DMKeySeparator)
	req.Len(parts, 2)
	req.LessOrEqual(parts[0], parts[1])
}

func TestWellFormedDMKey_Rejects_Malformed(t *testing.T) {
	req := require.New(t)
	a, b := uuid.New().String(), uuid.New().String()
	if a > b {
		a, b = b, a
	}

	req.False(WellFormedDMKey(""))
	req.False(WellFormedDMKey(a))
	req.False(WellFormedDMKey(a+"::"))
	req.False(WellFormedDMKey(a+"::"+b+"::"+a))
	req.False(WellFormedDMKey("not-a-uuid::"+b))
	req.False(WellFormedDMKey(b+"::"+a), "halves out of order")
}

func TestProperty_DMKey(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// UUIDs are derived from int64 pairs so shrinking stays meaningful.
	fromInts := func(hi, lo int64) uuid.UUID {
		var b [16]byte
		for i := 0; i < 8; i++ {
			b[i] = byte(hi >> (8 * i))
			b[8+i] = byte(lo >> (8 * i))
		}
		id, _ := uuid.FromBytes(b[:])
		return id
	}

	properties.Property("key is symmetric and well-formed", prop.ForAll(
		func(h1, l1, h2, l2 int64) bool {
			a, b := fromInts(h1, l1), fromInts(h2, l2)
			key := DMKey(a, b)
			return key == DMKey(b, a) && WellFormedDMKey(key)
		},
		gen.Int64(), gen.Int64(), gen.Int64(), gen.Int64(),
	))

	properties.Property("distinct pairs yield distinct keys", prop.ForAll(
		func(h1, l1, h2, l2, h3, l3 int64) bool {
			a, b, c := fromInts(h1, l1), fromInts(h2, l2), fromInts(h3, l3)
			if c == a || c == b {
				return true
			}
			return DMKey(a, b) != DMKey(a, c)
		},
		gen.Int64(), gen.Int64(), gen.Int64(), gen.Int64(), gen.Int64(), gen.Int64(),
	))

	properties.TestingRun(t)
}
