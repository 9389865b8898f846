package packet

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// wirePacket is the JSON envelope for one packet on the wire. Kind and
// placement live in the envelope; the remaining fields are read lazily
// per kind so unknown kinds survive decoding intact.
type wirePacket struct {
	Kind      string          `json:"kind"`
	TurnIndex int             `json:"turn_index"`
	TabIndex  int             `json:"tab_index"`
	Payload   json.RawMessage `json:"payload"`
}

type wireToolStart struct {
	Tool string `json:"tool"`
}

type wireMessageStart struct {
	ID                         string   `json:"id"`
	PreAnswerProcessingSeconds *float64 `json:"pre_answer_processing_seconds"`
}

type wireMessageDelta struct {
	Text string `json:"text"`
}

type wireCitationInfo struct {
	CitationNumber int    `json:"citation_number"`
	DocumentID     string `json:"document_id"`
}

type wireBranching struct {
	NumParallelBranches int `json:"num_parallel_branches"`
}

type wireImageDelta struct {
	Images []GeneratedImage `json:"images"`
}

type wireStop struct {
	Reason string `json:"reason"`
}

// Decode parses a single JSON-encoded packet. Unrecognized kinds decode
// to an Unknown payload rather than failing; only malformed JSON or a
// missing kind is an error.
func Decode(data []byte) (Packet, error) {
	var w wirePacket
	if err := json.Unmarshal(data, &w); err != nil {
		return Packet{}, fmt.Errorf("failed to decode packet envelope: %w", err)
	}
	if w.Kind == "" {
		return Packet{}, fmt.Errorf("packet has no kind")
	}

	pkt := Packet{
		Placement: Placement{TurnIndex: w.TurnIndex, TabIndex: w.TabIndex},
	}

	body := w.Payload
	if len(body) == 0 {
		body = json.RawMessage("{}")
	}

	switch Kind(w.Kind) {
	case KindToolStart:
		var p wireToolStart
		if err := json.Unmarshal(body, &p); err != nil {
			return Packet{}, fmt.Errorf("failed to decode tool_start payload: %w", err)
		}
		tool := ToolKind(p.Tool)
		if tool == "" {
			tool = ToolGeneric
		}
		pkt.Payload = ToolStart{Tool: tool}
	case KindToolDelta:
		pkt.Payload = ToolDelta{Data: body}
	case KindSectionEnd:
		pkt.Payload = SectionEnd{}
	case KindMessageStart:
		var p wireMessageStart
		if err := json.Unmarshal(body, &p); err != nil {
			return Packet{}, fmt.Errorf("failed to decode message_start payload: %w", err)
		}
		pkt.Payload = MessageStart{ID: p.ID, PreAnswerProcessingSeconds: p.PreAnswerProcessingSeconds}
	case KindMessageDelta:
		var p wireMessageDelta
		if err := json.Unmarshal(body, &p); err != nil {
			return Packet{}, fmt.Errorf("failed to decode message_delta payload: %w", err)
		}
		pkt.Payload = MessageDelta{Text: p.Text}
	case KindCitationInfo:
		var p wireCitationInfo
		if err := json.Unmarshal(body, &p); err != nil {
			return Packet{}, fmt.Errorf("failed to decode citation_info payload: %w", err)
		}
		pkt.Payload = CitationInfo{CitationNumber: p.CitationNumber, DocumentID: p.DocumentID}
	case KindTopLevelBranching:
		var p wireBranching
		if err := json.Unmarshal(body, &p); err != nil {
			return Packet{}, fmt.Errorf("failed to decode top_level_branching payload: %w", err)
		}
		pkt.Payload = TopLevelBranching{NumParallelBranches: p.NumParallelBranches}
	case KindImageGenerationDelta:
		var p wireImageDelta
		if err := json.Unmarshal(body, &p); err != nil {
			return Packet{}, fmt.Errorf("failed to decode image_generation_delta payload: %w", err)
		}
		pkt.Payload = ImageGenerationDelta{Images: p.Images}
	case KindStop:
		var p wireStop
		if err := json.Unmarshal(body, &p); err != nil {
			return Packet{}, fmt.Errorf("failed to decode stop payload: %w", err)
		}
		pkt.Payload = Stop{Reason: StopReason(p.Reason)}
	default:
		pkt.Payload = Unknown{Kind: Kind(w.Kind), Data: body}
	}

	return pkt, nil
}

// DecodeStream reads newline-delimited JSON packets until EOF. Blank
// lines and lines starting with '#' are skipped so recorded logs can
// carry comments.
func DecodeStream(r io.Reader) ([]Packet, error) {
	var packets []Packet

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pkt, err := Decode([]byte(line))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		packets = append(packets, pkt)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read packet stream: %w", err)
	}

	return packets, nil
}
