package game

import "strconv"

// NanosPerIota is the number of nanos in one IOTA.
const NanosPerIota uint64 = 1_000_000_000

// IotaToNanos converts whole IOTA to nanos.
func IotaToNanos(iota uint64) uint64 {
	return iota * NanosPerIota
}

// FormatIota renders an amount of nanos as IOTA with the given number of decimals.
// Integer arithmetic is used so large balances are not rounded through float64.
func FormatIota(nanos uint64, decimals int) string {
	whole := nanos / NanosPerIota
	if decimals <= 0 {
		if (nanos%NanosPerIota)*2 >= NanosPerIota {
			whole++
		}
		return strconv.FormatUint(whole, 10)
	}
	if decimals > 9 {
		decimals = 9
	}
	scale := uint64(1)
	for range 9 - decimals {
		scale *= 10
	}
	frac := (nanos % NanosPerIota) / scale
	if (nanos%NanosPerIota)%scale*2 >= scale {
		frac++
	}
	limit := NanosPerIota / scale
	if frac == limit {
		whole++
		frac = 0
	}
	s := strconv.FormatUint(frac, 10)
	for len(s) < decimals {
		s = "0" + s
	}
	return strconv.FormatUint(whole, 10) + "." + s
}
