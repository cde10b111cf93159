// Provides utilities to use in test code
package keypair

// Random creates a fresh keypair, panicking on entropy failure.
// Production code that needs to handle the failure uses
// `RandomCanFail` directly.
func Random() *Full {
	kp, err := RandomCanFail()
	if err != nil {
		panic(err)
	}
	return kp
}
