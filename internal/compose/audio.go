package compose

import "fmt"

// buildAudioMix emits the audio statements for the given raw audio
// input references and returns the label the caller should map.
//
// With two or more inputs a single amix combines them: duration policy
// "longest" (shorter inputs go silent once they end) and normalize
// disabled so mixing never introduces a surprise gain reduction. With
// exactly one input no statement is needed; the raw reference is
// returned for the engine to map directly. With none, the label is
// empty.
func buildAudioMix(g *graph, audioInputs []string, outLabel string) string {
	switch len(audioInputs) {
	case 0:
		return ""
	case 1:
		return audioInputs[0]
	default:
		g.add(audioInputs,
			fmt.Sprintf("amix=inputs=%d:duration=longest:normalize=0", len(audioInputs)),
			[]string{outLabel})
		return outLabel
	}
}
