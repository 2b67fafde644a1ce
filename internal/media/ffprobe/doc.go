// Package ffprobe runs ffprobe against a video file and decodes the fields
// the frame extractor needs: the primary video stream's geometry, its frame
// rate and the container duration.
//
// Probe is the entry point. Result.VideoStream picks the first video stream;
// Stream.FrameRate and Stream.FrameCount parse ffprobe's string encoded
// numbers.
package ffprobe
