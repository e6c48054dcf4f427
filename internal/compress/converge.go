// Package compress implements the size-seeking still-image compression
// policy: a bounded hill-climbing search over the encoder quality parameter
// that converges output size into a [min, max] kilobyte window.
package compress

// Quality search bounds. The search domain is clamped to [QualityFloor,
// QualityCeil]; both ends are absorbing (the current encoding is accepted
// once a bound is hit while still violating the window). The first
// iteration encodes at the caller's base quality unclamped, so a base
// outside the domain can be accepted as-is when it already satisfies the
// window.
const (
	QualityFloor = 10
	QualityCeil  = 95
	QualityStep  = 5
	MaxAttempts  = 20
)

// SizeWindow is the kilobyte band an encoding must land in to be accepted.
// A zero bound means no constraint on that side. When an inverted window
// makes both conditions fire, too-large wins and quality is lowered.
type SizeWindow struct {
	MinKB int
	MaxKB int
}

// Bounded reports whether at least one side of the window is constrained.
func (w SizeWindow) Bounded() bool { return w.MinKB > 0 || w.MaxKB > 0 }

// EncodeFunc produces the encoded bytes for one quality value.
type EncodeFunc func(quality int) ([]byte, error)

// Encoding is one accepted compression result.
type Encoding struct {
	Data     []byte
	Quality  int     // Quality the accepted bytes were encoded at.
	SizeKB   float64 // Fractional kilobytes of Data.
	Attempts int     // Quality adjustments performed before acceptance.
}

// Converge encodes at the base quality, measures the result against the
// window, and steps quality up or down by QualityStep until the window is
// satisfied, a quality bound absorbs the search, or MaxAttempts adjustments
// have been made. The last measured encoding is always accepted on
// exhaustion, so a terminating call never discards its output.
func Converge(encode EncodeFunc, baseQuality int, win SizeWindow) (Encoding, error) {
	quality := baseQuality
	attempts := 0

	for {
		data, err := encode(quality)
		if err != nil {
			return Encoding{}, err
		}

		enc := Encoding{
			Data:     data,
			Quality:  quality,
			SizeKB:   float64(len(data)) / 1024,
			Attempts: attempts,
		}

		tooLarge := win.MaxKB > 0 && enc.SizeKB > float64(win.MaxKB)
		tooSmall := win.MinKB > 0 && enc.SizeKB < float64(win.MinKB) && quality < QualityCeil

		if !tooLarge && !tooSmall {
			return enc, nil
		}

		if tooLarge {
			if quality <= QualityFloor {
				return enc, nil
			}
			quality = max(QualityFloor, quality-QualityStep)
		} else {
			if quality >= QualityCeil {
				return enc, nil
			}
			quality = min(QualityCeil, quality+QualityStep)
		}

		attempts++
		if attempts >= MaxAttempts {
			return enc, nil
		}
	}
}
