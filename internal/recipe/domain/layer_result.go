package domain

// LayerResult is the running value after one layer of a chain. Index is zero-based and
// Output is the lowercase hex fed to the next layer.
type LayerResult struct {
	Index     int
	Algorithm Algorithm
	Output    string
}
