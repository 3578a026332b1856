package gemmbench

// NaiveMultiplier is the textbook triple loop in i→j→k order. Every output
// cell gets one scalar accumulator and a single assignment, so the inner
// loop strides down a column of B.
type NaiveMultiplier struct{}

// Name implements Multiplier.
func (NaiveMultiplier) Name() string { return NameNaive }

// Multiply implements Multiplier.
func (NaiveMultiplier) Multiply(a, b, c *Matrix) error {
	n, err := checkOperands("Naive", a, b, c)
	if err != nil {
		return err
	}
	ad, bd, cd := a.data, b.data, c.data
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += ad[i*n+k] * bd[k*n+j]
			}
			cd[i*n+j] = sum
		}
	}
	return nil
}
