package coin

import (
	"encoding/json"
	"flag"
	"math/big"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		input   string
		want    Amount
		wantErr *errors.Error
	}{
		"plain wei":          {input: "1000", want: NewAmount(1000)},
		"explicit wei":       {input: "7 wei", want: NewAmount(7)},
		"gwei":               {input: "20 gwei", want: NewAmount(20000000000)},
		"fractional gwei":    {input: "1.5gwei", want: NewAmount(1500000000)},
		"ether":              {input: "1 ETH", want: NewAmount(1000000000000000000)},
		"fractional ether":   {input: "0.000000000000000001 eth", want: NewAmount(1)},
		"surrounding spaces": {input: "  5  ", want: NewAmount(5)},
		"negative":           {input: "-1", wantErr: errors.ErrAmount},
		"fractional wei":     {input: "1.5", wantErr: errors.ErrAmount},
		"too precise ether":  {input: "0.0000000000000000001 ETH", wantErr: errors.ErrAmount},
		"unknown unit":       {input: "3 BTC", wantErr: errors.ErrAmount},
		"empty":              {input: "", wantErr: errors.ErrAmount},
		"garbage":            {input: "one", wantErr: errors.ErrAmount},
		"more than 256 bits": {input: "115792089237316195423570985008687907853269984665640564039457584007913129639936", wantErr: errors.ErrOverflow},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAmount(tc.input)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			if !tc.want.Equals(got) {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	a, b := NewAmount(30), NewAmount(12)

	sum, err := a.Add(b)
	assert.Nil(t, err)
	assert.Equal(t, NewAmount(42), sum)

	diff, err := a.Subtract(b)
	assert.Nil(t, err)
	assert.Equal(t, NewAmount(18), diff)

	_, err = b.Subtract(a)
	assert.IsErr(t, errors.ErrAmount, err)

	zero, err := a.Subtract(a)
	assert.Nil(t, err)
	assert.Equal(t, true, zero.IsZero())

	assert.Equal(t, 1, a.Compare(b))
	assert.Equal(t, -1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(NewAmount(30)))
	assert.Equal(t, true, a.IsGTE(b))
	assert.Equal(t, true, a.IsGTE(a))
	assert.Equal(t, false, b.IsGTE(a))
}

func TestAmountOverflow(t *testing.T) {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	top, err := FromBig(max)
	assert.Nil(t, err)

	_, err = top.Add(NewAmount(1))
	assert.IsErr(t, errors.ErrOverflow, err)

	same, err := top.Add(Amount{})
	assert.Nil(t, err)
	assert.Equal(t, top, same)

	_, err = FromBig(big.NewInt(-1))
	assert.IsErr(t, errors.ErrAmount, err)
}

func TestAmountHuman(t *testing.T) {
	cases := map[string]string{
		"0":                    "0 ETH",
		"1":                    "0.000000000000000001 ETH",
		"1000000000000000000":  "1 ETH",
		"2500000000000000000":  "2.5 ETH",
		"12000000000000000000": "12 ETH",
	}
	for wei, want := range cases {
		assert.Equal(t, want, MustParseAmount(wei).Human())
	}
}

func TestAmountJSON(t *testing.T) {
	type wrapper struct {
		Value Amount `json:"value"`
	}
	raw, err := json.Marshal(wrapper{Value: NewAmount(123)})
	assert.Nil(t, err)
	assert.Equal(t, `{"value":"123"}`, string(raw))

	var w wrapper
	assert.Nil(t, json.Unmarshal([]byte(`{"value": "2 gwei"}`), &w))
	assert.Equal(t, NewAmount(2000000000), w.Value)

	assert.Nil(t, json.Unmarshal([]byte(`{"value": 17}`), &w))
	assert.Equal(t, NewAmount(17), w.Value)

	err = json.Unmarshal([]byte(`{"value": true}`), &w)
	assert.IsErr(t, errors.ErrEncoding, err)
}

func TestAmountFlag(t *testing.T) {
	var a Amount
	fl := flag.NewFlagSet("test", flag.ContinueOnError)
	fl.Var(&a, "amount", "")
	assert.Nil(t, fl.Parse([]string{"-amount", "3 gwei"}))
	assert.Equal(t, NewAmount(3000000000), a)
}
