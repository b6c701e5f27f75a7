// Package capture models the image payload handed to text recognition.
//
// A Frame pairs captured pixel data with its orientation metadata. Frames are
// built from in-memory images (NewFrame), encoded data (Decode, DecodeBase64)
// or files on disk through a Cache. Capturing the screen itself is left to the
// host application; this package only carries what it produced.
//
// # Orientation
//
// Frame.Rotation is the clockwise turn, in degrees, needed to make the content
// upright. Engines call Frame.Upright before recognition, and bounding boxes
// they report are in upright coordinates.
package capture
