// Package dataset turns decoded video frames and per-frame bounding-box CSVs
// into a YOLO-style training layout.
//
// The package owns the three pipeline stages for one video unit:
//   - Sampler: selects every Nth decoded frame and writes it as an image
//   - LoadAnnotations: filters CSV rows to the selected frames and remaps
//     class names through an injected ClassMap
//   - WriteLabels: writes one label file per annotated frame plus the
//     per-video manifest
//
// Layout derives every output path from the output root, the video name, and
// the frame index so images and labels always share a stem. DiscoverUnits and
// VerifyUnit sit on either side of the pipeline: the first finds input units,
// the second checks a produced unit against the pairing contract.
//
// Decoding and image encoding are reached only through the FrameSource and
// ImageWriter interfaces; see internal/media for the ffmpeg and JPEG backends.
package dataset
