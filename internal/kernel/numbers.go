// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

// ErrOverflow is returned when a literal does not fit the constant range:
// int64 integers, and rationals or reals with int64 numerator and
// denominator.
var ErrOverflow = errors.New("numeric literal out of range")

type NumberKind uint8

const (
	NumberInt NumberKind = iota
	NumberRat
	NumberReal
)

// Number is an interpreted numeric constant in lowest terms. Den is 1 for
// integers and always positive.
type Number struct {
	Kind NumberKind
	Num  int64
	Den  int64
}

func (n Number) Sort() SortID {
	switch n.Kind {
	case NumberRat:
		return SortRat
	case NumberReal:
		return SortReal
	default:
		return SortInt
	}
}

func (n Number) String() string {
	switch n.Kind {
	case NumberRat:
		return fmt.Sprintf("%d/%d", n.Num, n.Den)
	case NumberReal:
		return realString(n.Num, n.Den)
	default:
		return strconv.FormatInt(n.Num, 10)
	}
}

// realString prints reals in decimal when the denominator divides a power of
// ten that int64 can hold, and as a fraction otherwise.
func realString(num int64, den int64) string {
	r := new(big.Rat).SetFrac64(num, den)
	pow := int64(1)
	for digits := 0; digits <= 18; digits = digits + 1 {
		if pow%den == 0 {
			if digits == 0 {
				digits = 1
			}
			return r.FloatString(digits)
		}
		pow = pow * 10
	}
	return fmt.Sprintf("%d/%d", num, den)
}

func ParseInteger(text string) (Number, error) {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Number{}, ErrOverflow
		}
		return Number{}, err
	}
	return Number{Kind: NumberInt, Num: v, Den: 1}, nil
}

func ParseRational(text string) (Number, error) {
	return parseRat(text, NumberRat)
}

func ParseReal(text string) (Number, error) {
	return parseRat(text, NumberReal)
}

func parseRat(text string, kind NumberKind) (Number, error) {
	r, ok := new(big.Rat).SetString(text)
	if !ok {
		return Number{}, fmt.Errorf("malformed numeric literal %q", text)
	}
	if !r.Num().IsInt64() || !r.Denom().IsInt64() {
		return Number{}, ErrOverflow
	}
	return Number{Kind: kind, Num: r.Num().Int64(), Den: r.Denom().Int64()}, nil
}
