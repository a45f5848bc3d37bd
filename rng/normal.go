package rng

import "math"

// rejectionCap bounds the acceptance/rejection loops. The theoretical reject
// probability is bounded away from one, so tripping this means the uniform
// source is broken (or an implementation bug), not a legitimate failure.
const rejectionCap = 10000

// inversionBig is 2^27. A single uniform carries only 32 bits of entropy,
// not enough for the 53-bit mantissa the inverse CDF maps through, so the
// inversion method folds two consecutive uniforms together.
const inversionBig = 134217728

func inversionNormal(unif func() float64) float64 {
	u := unif()
	u = float64(int64(inversionBig*u)) + unif()
	return qnorm(u / inversionBig)
}

func boxMullerPair(unif func() float64) (ret, keep float64) {
	theta := 2 * math.Pi * unif()
	r := math.Sqrt(-2 * math.Log(unif()))
	return r * math.Cos(theta), r * math.Sin(theta)
}

// Kinderman-Ramage constants. krNearSplit is the corrected central-region
// slope; krNearSplitBuggy is the truncated value the original shipped with,
// which skews draws near the region boundary and must be reproduced for
// legacy streams.
const (
	krC1             = 0.398942280401433
	krC2             = 0.180025191068563
	krA              = 2.216035867166471
	krNearSplit      = 1.131131635444180
	krNearSplitBuggy = 1.13113163544180
)

func krG(x float64) float64 {
	return krC1*math.Exp(-x*x/2.0) - krC2*(krA-x)*(krA-x)
}

func kindermanRamage(unif func() float64, buggy bool) float64 {
	slope := krNearSplit
	if buggy {
		slope = krNearSplitBuggy
	}

	u1 := unif()
	if u1 < 0.884070402298758 {
		u2 := unif()
		return krA * (slope*u1 + u2 - 1)
	}

	if u1 >= 0.973310954173898 { // tail
		for i := 0; i < rejectionCap; i++ {
			u2 := unif()
			u3 := unif()
			t := krA*krA - 2*math.Log(u3)
			if u2*u2 < krA*krA/t {
				if u1 < 0.986655477086949 {
					return math.Sqrt(t)
				}
				return -math.Sqrt(t)
			}
		}
		panic("rng: kinderman-ramage tail rejection did not terminate")
	}

	if u1 >= 0.958720824790463 { // region 3
		for i := 0; i < rejectionCap; i++ {
			u2 := unif()
			u3 := unif()
			t := krA - 0.630834801921960*math.Min(u2, u3)
			if math.Max(u2, u3) <= 0.755591531667601 {
				return krSigned(t, u2, u3)
			}
			if 0.034240503750111*math.Abs(u2-u3) <= krG(t) {
				return krSigned(t, u2, u3)
			}
		}
		panic("rng: kinderman-ramage region 3 rejection did not terminate")
	}

	if u1 >= 0.911312780288703 { // region 2
		for i := 0; i < rejectionCap; i++ {
			u2 := unif()
			u3 := unif()
			t := 0.479727404222441 + 1.105473661022070*math.Min(u2, u3)
			if math.Max(u2, u3) <= 0.872834976671790 {
				return krSigned(t, u2, u3)
			}
			if 0.049264496373128*math.Abs(u2-u3) <= krG(t) {
				return krSigned(t, u2, u3)
			}
		}
		panic("rng: kinderman-ramage region 2 rejection did not terminate")
	}

	// region 1. The historical variant ran without the negative-t guard; a
	// negative t never passes either acceptance check, so the streams agree,
	// but each variant keeps its own published loop.
	for i := 0; i < rejectionCap; i++ {
		u2 := unif()
		u3 := unif()
		t := 0.479727404222441 - 0.595507138015940*math.Min(u2, u3)
		if !buggy && t < 0.0 {
			continue
		}
		if math.Max(u2, u3) <= 0.805577924423817 {
			return krSigned(t, u2, u3)
		}
		if 0.053377549506886*math.Abs(u2-u3) <= krG(t) {
			return krSigned(t, u2, u3)
		}
	}
	panic("rng: kinderman-ramage region 1 rejection did not terminate")
}

func krSigned(t, u2, u3 float64) float64 {
	if u2 < u3 {
		return t
	}
	return -t
}

// Ahrens-Dieter algorithm FL (m = 5): 32 strips over the half-normal plus a
// geometric tail, with Forsythe acceptance inside a strip. Tables follow the
// published single-precision values.
var adA = [32]float64{
	0.0, 0.03917609, 0.07841241, 0.1177699,
	0.1573107, 0.1970991, 0.2372021, 0.2776904,
	0.3186394, 0.3601299, 0.4022501, 0.4450965,
	0.4887764, 0.5334097, 0.5791322, 0.6260990,
	0.6744898, 0.7245144, 0.7764218, 0.8305109,
	0.8871466, 0.9467818, 1.009990, 1.077516,
	1.150349, 1.229859, 1.318011, 1.417797,
	1.534121, 1.675940, 1.862732, 2.153875,
}

var adD = [31]float64{
	0.0, 0.0, 0.0, 0.0, 0.0,
	0.2636843, 0.2425085, 0.2255674, 0.2116342, 0.1999243,
	0.1899108, 0.1812252, 0.1736014, 0.1668419, 0.1607967,
	0.1553497, 0.1504094, 0.1459026, 0.1417700, 0.1379632,
	0.1344418, 0.1311722, 0.1281260, 0.1252791, 0.1226109,
	0.1201036, 0.1177417, 0.1155119, 0.1134023, 0.1114027,
	0.1095039,
}

var adT = [31]float64{
	0.0007673828, 0.002306870, 0.003860618, 0.005438454,
	0.007050699, 0.008708396, 0.01042357, 0.01220953,
	0.01408125, 0.01605579, 0.01815290, 0.02039573,
	0.02281177, 0.02543407, 0.02830296, 0.03146822,
	0.03499233, 0.03895483, 0.04345878, 0.04864035,
	0.05468334, 0.06184222, 0.07047983, 0.08113195,
	0.09462444, 0.1123001, 0.1364980, 0.1716886,
	0.2276241, 0.3304980, 0.5847031,
}

var adH = [31]float64{
	0.03920617, 0.03932705, 0.03950999, 0.03975703,
	0.04007093, 0.04045533, 0.04091481, 0.04145507,
	0.04208311, 0.04280748, 0.04363863, 0.04458932,
	0.04567523, 0.04691571, 0.04833487, 0.04996298,
	0.05183859, 0.05401138, 0.05654656, 0.05953130,
	0.06308489, 0.06737503, 0.07264544, 0.07926471,
	0.08781922, 0.09930398, 0.1155599, 0.1404344,
	0.1836142, 0.2790016, 0.7010474,
}

func ahrensDieter(unif func() float64) float64 {
	u := unif()
	s := 0.0
	if u > 0.5 {
		s = 1.0
	}
	u = u + u - s
	u *= 32.0
	i := int(u)
	if i == 32 {
		i = 31
	}

	var aa, w float64
	if i != 0 {
		// center strips
		ustar := u - float64(i)
		aa = adA[i-1]
	centre:
		for iter := 0; ; iter++ {
			if iter >= rejectionCap {
				panic("rng: ahrens-dieter centre rejection did not terminate")
			}
			if ustar > adT[i-1] {
				w = (ustar - adT[i-1]) * adH[i-1]
				break centre
			}
			u = unif()
			w = u * (adA[i] - aa)
			tt := (w*0.5 + aa) * w
			for {
				if ustar > tt {
					break centre
				}
				u = unif()
				if ustar < u {
					ustar = unif()
					continue centre
				}
				tt = u
				ustar = unif()
			}
		}
	} else {
		// tail
		i = 6
		aa = adA[31]
		for {
			u = u + u
			if u >= 1.0 {
				break
			}
			aa += adD[i-1]
			if i < 31 {
				// Uniforms below 2^-25 would run past the last tail
				// interval; pin them to it.
				i++
			}
		}
		u -= 1.0
	tail:
		for iter := 0; ; iter++ {
			if iter >= rejectionCap {
				panic("rng: ahrens-dieter tail rejection did not terminate")
			}
			w = u * adD[i-1]
			tt := (w*0.5 + aa) * w
			for {
				ustar := unif()
				if ustar > tt {
					break tail
				}
				u = unif()
				if ustar < u {
					u = unif()
					continue tail
				}
				tt = u
			}
		}
	}

	y := aa + w
	if s == 1.0 {
		return -y
	}
	return y
}

// qnorm is the inverse standard-normal CDF, Wichura's algorithm AS 241 with
// the high-accuracy rational approximations (about 16 significant digits).
func qnorm(p float64) float64 {
	if math.IsNaN(p) {
		return math.NaN()
	}
	if p <= 0 {
		return math.Inf(-1)
	}
	if p >= 1 {
		return math.Inf(1)
	}

	q := p - 0.5
	if math.Abs(q) <= 0.425 {
		r := 0.180625 - q*q
		return q * (((((((r*2509.0809287301226727+33430.575583588128105)*r+67265.770927008700853)*r+
			45921.953931549871457)*r+13731.693765509461125)*r+
			1971.5909503065514427)*r+133.14166789178437745)*r + 3.387132872796366608) /
			(((((((r*5226.495278852545703+28729.085735721942674)*r+39307.89580009271061)*r+
				21213.794301586595867)*r+5394.1960214247511077)*r+
				687.1870074920579083)*r+42.313330701600911252)*r + 1.0)
	}

	r := p
	if q > 0 {
		r = 1 - p
	}
	r = math.Sqrt(-math.Log(r))

	var val float64
	if r <= 5.0 {
		r -= 1.6
		val = (((((((r*7.7454501427834140764e-4+0.0227238449892691845833)*r+
			0.24178072517745061177)*r+1.27045825245236838258)*r+
			3.64784832476320460504)*r+5.7694972214606914055)*r+
			4.6303378461565452959)*r + 1.42343711074968357734) /
			(((((((r*1.05075007164441684324e-9+5.475938084995344946e-4)*r+
				0.0151986665636164571966)*r+0.14810397642748007459)*r+
				0.68976733498510000455)*r+1.6763848301838038494)*r+
				2.05319162663775882187)*r + 1.0)
	} else {
		r -= 5.0
		val = (((((((r*2.01033439929228813265e-7+2.71155556874348757815e-5)*r+
			0.0012426609473880784386)*r+0.026532189526576123093)*r+
			0.29656057182850489123)*r+1.7848265399172913358)*r+
			5.4637849111641143699)*r + 6.6579046435011037772) /
			(((((((r*2.04426310338993978564e-15+1.4215117583164458887e-7)*r+
				1.8463183175100546818e-5)*r+7.868691311456132591e-4)*r+
				0.0148753612908506148525)*r+0.13692988092273580531)*r+
				0.59983220655588793769)*r + 1.0)
	}
	if q < 0 {
		return -val
	}
	return val
}
