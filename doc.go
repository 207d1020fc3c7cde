// Package xmlstream is a pull-based XML 1.0 reader and writer. Reader
// tokenizes a byte stream into a sequence of Events without validating
// against a DTD or schema; NSReader layers namespace resolution on top;
// Writer serializes Events back to bytes without ever escaping or
// reformatting content on the caller's behalf.
package xmlstream
