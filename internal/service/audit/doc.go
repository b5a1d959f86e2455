// Package audit records mutation attempts made through the BFF. Recording is
// fire-and-forget: a slow or unavailable audit store never delays or fails
// the mutation it describes.
package audit
