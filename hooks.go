package parsecache

// Hooks are lightweight callbacks for high-signal degrade events.
// Implementations MUST be cheap and non-blocking; the cache calls them on
// hot paths. Useful for metrics counters or sampled alerting where reading
// warn-level logs is not enough.
type Hooks interface {
	// The construction-time connectivity probe failed and the client was
	// permanently disabled.
	DialFailed(addr string, err error)

	// A store call failed mid-operation and the call degraded to its zero
	// result. op is one of "get", "set", "keys", "del", "incr", "reset".
	// key is the wire key, or the pattern for "keys"/"del".
	StoreError(op, key string, err error)

	// A payload failed to encode or decode. direction is "encode" or
	// "decode". An undecodable stored payload still counts as a hit.
	CodecError(direction, key string, err error)

	// A pipelined batch write failed as a whole; none of the n submitted
	// items is reported as stored.
	BatchAborted(n int, err error)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) DialFailed(string, error)         {}
func (NopHooks) StoreError(string, string, error) {}
func (NopHooks) CodecError(string, string, error) {}
func (NopHooks) BatchAborted(int, error)          {}
