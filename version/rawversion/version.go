package rawversion

// RawVersion is the raw version string.
//
// This indirection keeps the semver parser out of callers that only need
// the string.
const RawVersion = "0.3.0"
