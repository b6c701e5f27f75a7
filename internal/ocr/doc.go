// Package ocr provides the Tesseract-backed text recognition engine.
//
// TesseractEngine implements recognition.Engine on top of gosseract/v2. Each
// call turns the frame upright, runs the configured preprocessing, and asks
// Tesseract for bounding boxes at the configured Level. Every returned box
// becomes one recognition.TextBlock.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// Config.TessdataPrefix points Tesseract at a non-standard data directory.
//
// # Builds Without cgo
//
// gosseract needs cgo. When cgo is disabled, TesseractEngine still exists but
// fails every request with ErrUnavailable, and the failure is logged like any
// other recognition failure.
//
// # Granularity
//
// The default LevelBlock yields paragraph-like blocks, which matches how a
// screen is usually read. LevelLine and LevelWord give finer boxes for
// locating individual labels.
package ocr
