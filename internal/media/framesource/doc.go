// Package framesource decodes a video into RGBA frames by piping ffmpeg's
// rawvideo output.
//
// Open probes the file with ffprobe for the frame geometry, starts ffmpeg and
// reads the first frame so that an undecodable file fails at open time.
// Decoder.Next then yields frames in decode order until io.EOF.
package framesource
