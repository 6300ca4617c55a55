//go:build tinygo

package kernel

// TinyGo has no runtime stack formatter.
func captureStack() []byte {
	return nil
}
