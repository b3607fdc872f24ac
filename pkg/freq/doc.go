// Package freq provides unit-aware frequency quantities.
//
// A [Quantity] carries its [Unit] so values read from selection files
// ("93.15GHz") and values from static tables can be compared and summed
// without silently mixing units:
//
//	q, err := freq.Parse("93.173700GHz")
//	if err != nil {
//	    return err
//	}
//	width := q.Sub(freq.New(93.0, freq.GHz)) // 0.1737 GHz
//
// Converting a quantity into its own unit is the identity, so comparisons
// performed in a single unit never pick up conversion rounding.
package freq
