// Package imageio reads and writes the raster images unshred works on.
//
// # Formats
//
// Decoding accepts every format registered with [image.Decode] by
// github.com/disintegration/imaging (PNG, JPEG, GIF, TIFF, BMP) plus WebP.
// Encoding picks the format from the output file extension; WebP is
// read-only.
//
// # Pixel Model
//
// Every decoded image is returned as an [*image.NRGBA] with its origin at
// (0, 0). Non-premultiplied 8-bit channels are what the column comparison
// works on, and copying shreds between NRGBA images is exact.
//
// # Standard Streams
//
// The path "-" means standard input for [Open] and standard output for
// [Save]. Output to standard output is always PNG.
package imageio
