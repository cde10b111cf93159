package common

// Serializable is anything that renders itself to wire bytes, most
// prominently the signed operation envelope. The json log format
// inlines these values instead of stringifying them.
type Serializable interface {
	Serialize() ([]byte, error)
}
