package service

// CredentialSealer protects the stored Basic credentials at rest. The legacy
// client persisted them base64-encoded in plain local storage; sealing keeps
// the profile-sync path working without a recoverable secret sitting in the
// clear.
type CredentialSealer interface {
	Seal(plain []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}
