package compose

import "fmt"

// buildConcat compiles the prepend/append graph shape: the main+overlay
// segment is fully resolved into intermediate labels first, every
// bookend clip is normalized to the configured frame size and rate, and
// one N-way concat joins the segments in prepend → main → append order
// on both streams, producing exactly the two final labels.
//
// The overlay chain is never wired straight into the concat inputs;
// concatenation and overlay compositing stay mutually exclusive shapes.
func buildConcat(g *graph, st state, warn func(string, ...interface{})) {
	opts := st.opts
	p, m, o := len(st.prepend), len(st.main), len(st.overlays)

	type segment struct {
		video string
		audio string
	}
	segments := make([]segment, 0, p+1+len(st.appended))

	for i := range st.prepend {
		label := g.next("pre")
		g.add([]string{videoRef(i)}, segmentNormalizeFilter(opts), []string{label})
		segments = append(segments, segment{video: label, audio: audioRef(i)})
	}

	if m > 0 {
		base := g.next("main")
		g.add([]string{videoRef(p)}, segmentNormalizeFilter(opts), []string{base})

		// With no overlays the normalized base itself is the segment
		// stream; otherwise the chain resolves into one intermediate.
		segVideo := base
		if o > 0 {
			segVideo = g.next("segv")
			buildOverlayChain(g, base, st.overlays, p+m, segVideo, warn)
		}

		audioInputs := make([]string, 0, m+o)
		for i := 0; i < m; i++ {
			audioInputs = append(audioInputs, audioRef(p+i))
		}
		for i := 0; i < o; i++ {
			audioInputs = append(audioInputs, audioRef(p+m+i))
		}
		segAudio := audioInputs[0]
		if len(audioInputs) > 1 {
			segAudio = buildAudioMix(g, audioInputs, g.next("sega"))
		}
		segments = append(segments, segment{video: segVideo, audio: segAudio})
	} else if o > 0 {
		warn("composition has overlays but no main clip; overlays ignored")
	}

	for i := range st.appended {
		idx := p + m + o + i
		label := g.next("post")
		g.add([]string{videoRef(idx)}, segmentNormalizeFilter(opts), []string{label})
		segments = append(segments, segment{video: label, audio: audioRef(idx)})
	}

	inputs := make([]string, 0, len(segments)*2)
	for _, seg := range segments {
		inputs = append(inputs, seg.video, seg.audio)
	}
	g.add(inputs,
		fmt.Sprintf("concat=n=%d:v=1:a=1", len(segments)),
		[]string{opts.VideoOutputLabel, opts.AudioOutputLabel})
}

// segmentNormalizeFilter scales and paces a segment stream to the
// configured frame size and rate so concat sees uniform parameters.
func segmentNormalizeFilter(opts Options) string {
	w, h, _ := opts.frameSize()
	fps := opts.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	return fmt.Sprintf(
		"format=pix_fmts=%s,scale=w=%d:h=%d:force_original_aspect_ratio=1,pad=w=%d:h=%d:x=(ow-iw)/2:y=(oh-ih)/2:color=black,setsar=1,fps=%d",
		basePixelFormat, w, h, w, h, fps)
}
