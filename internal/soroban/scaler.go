package soroban

// Scale turns a signed single-digit base into the emitted operand by drawing
// an exponent k and returning base*10^k.
//
// For digitCount 1 no draw is made and k is 0. Otherwise exactly one draw is
// consumed and k is uniform over [0, min(maxExponent, digitCount-1)]. The
// base digit alone decides legality; the exponent only rescales it.
func Scale(s *Stream, base, digitCount, maxExponent int) (operand, exponent int) {
	if digitCount <= 1 {
		return base, 0
	}
	limit := digitCount - 1
	if maxExponent < limit {
		limit = maxExponent
	}
	if limit < 0 {
		limit = 0
	}
	exponent = s.IntN(limit + 1)
	return base * pow10(exponent), exponent
}

// subtractExponentLimit is the largest exponent at which subtracting base
// leaves total non-negative.
func subtractExponentLimit(base, total, digitCount int) int {
	k := 0
	for k+1 < digitCount && base*pow10(k+1) <= total {
		k++
	}
	return k
}

func pow10(k int) int {
	p := 1
	for range k {
		p *= 10
	}
	return p
}
