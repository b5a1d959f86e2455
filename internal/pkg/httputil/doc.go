// Package httputil provides shared HTTP response and request helpers that
// enforce the platform response envelope {success, data?/message?}.
package httputil
