package manager

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/spindlework/a2a-runtime/pkg/a2a"
)

/*
AgentResponse is one coherent unit of agent output reconstructed from a
heterogeneous event stream. A response with empty content but non-empty
images or files is valid. Multiple responses may be emitted per stream
(streaming chunks, multi-artifact tasks), in receipt order.
*/
type AgentResponse struct {
	Content string
	Images  []Image
	Files   []FileRef
}

/*
Image is an inline binary recognized by its magic bytes.
*/
type Image struct {
	Name  string
	Bytes []byte
}

/*
FileRef is a non-image file product, inline or by reference.
*/
type FileRef struct {
	Name string
	Data []byte
	URL  string
}

// Magic byte prefixes for the recognized image formats.
var imageSignatures = [][]byte{
	{0x89, 0x50, 0x4E, 0x47}, // PNG
	{0xFF, 0xD8, 0xFF},       // JPEG
	{0x47, 0x49, 0x46},       // GIF
}

func isImage(data []byte) bool {
	for _, sig := range imageSignatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}

	return false
}

// folder accumulates stream state: a pending text buffer for append-mode
// artifact chunks plus gathered binary parts, flushed into responses on
// chunk/task boundaries.
type folder struct {
	responses   []AgentResponse
	pendingText string
	images      []Image
	files       []FileRef
}

/*
foldEvents consumes the event sequence and reconstructs responses.
*/
func foldEvents(events <-chan a2a.Event) []AgentResponse {
	f := &folder{}

	for event := range events {
		switch evt := event.(type) {
		case a2a.Message:
			f.onMessage(evt)
		case a2a.Task:
			f.onTask(evt)
		case a2a.TaskArtifactUpdateEvent:
			f.onArtifactUpdate(evt)
		case a2a.TaskStatusUpdateEvent:
			f.onStatusUpdate(evt)
		}
	}

	return f.responses
}

func (f *folder) onMessage(msg a2a.Message) {
	texts := make([]string, 0, len(msg.Parts))
	var images []Image
	var files []FileRef

	for _, part := range msg.Parts {
		if part.Kind == a2a.PartKindText {
			if part.Text != "" {
				texts = append(texts, part.Text)
			}
			continue
		}

		images, files = classify(part, nil, images, files)
	}

	f.responses = append(f.responses, AgentResponse{
		Content: strings.Join(texts, " "),
		Images:  images,
		Files:   files,
	})
}

func (f *folder) onTask(task a2a.Task) {
	// A task snapshot folds each artifact as a terminal chunk: one
	// response per artifact.
	for _, artifact := range task.Artifacts {
		f.foldArtifact(artifact, false)
		f.flush()
	}
}

func (f *folder) onArtifactUpdate(evt a2a.TaskArtifactUpdateEvent) {
	appendChunk := evt.Append != nil && *evt.Append
	f.foldArtifact(evt.Artifact, appendChunk)

	if evt.LastChunk != nil && *evt.LastChunk {
		f.flush()
	}
}

func (f *folder) onStatusUpdate(evt a2a.TaskStatusUpdateEvent) {
	if evt.Status.State == a2a.TaskStateCompleted && f.pendingText != "" {
		f.flush()
	}
}

func (f *folder) foldArtifact(artifact a2a.Artifact, appendChunk bool) {
	texts := make([]string, 0, len(artifact.Parts))

	for _, part := range artifact.Parts {
		if part.Kind == a2a.PartKindText {
			if part.Text != "" {
				texts = append(texts, part.Text)
			}
			continue
		}

		f.images, f.files = classify(part, artifact.Name, f.images, f.files)
	}

	chunk := strings.Join(texts, " ")

	if appendChunk {
		f.pendingText = joinChunks(f.pendingText, chunk)
	} else {
		f.pendingText = chunk
	}
}

func (f *folder) flush() {
	f.responses = append(f.responses, AgentResponse{
		Content: f.pendingText,
		Images:  f.images,
		Files:   f.files,
	})

	f.pendingText = ""
	f.images = nil
	f.files = nil
}

/*
classify sorts a non-text part into the image or file bucket. Inline
bytes that open with a PNG, JPEG or GIF signature become images named
after the artifact (or a fresh id); URL references are always files.
*/
func classify(part a2a.Part, artifactName *string, images []Image, files []FileRef) ([]Image, []FileRef) {
	name := ""
	if artifactName != nil {
		name = *artifactName
	}

	switch part.Kind {
	case a2a.PartKindFile:
		if part.FileURL != "" {
			files = append(files, FileRef{Name: name, URL: part.FileURL})
			return images, files
		}

		if isImage(part.FileBytes) {
			images = append(images, Image{Name: imageName(name), Bytes: part.FileBytes})
			return images, files
		}

		files = append(files, FileRef{Name: name, Data: part.FileBytes})
	case a2a.PartKindData:
		if isImage(part.Data) {
			images = append(images, Image{Name: imageName(name), Bytes: part.Data})
			return images, files
		}

		files = append(files, FileRef{Name: name, Data: part.Data})
	}

	return images, files
}

func imageName(name string) string {
	if name != "" {
		return name
	}

	return uuid.NewString()
}

/*
joinChunks appends a streaming text chunk, inserting a single space only
when neither side already provides whitespace at the seam.
*/
func joinChunks(existing, chunk string) string {
	if existing == "" {
		return chunk
	}

	if chunk == "" {
		return existing
	}

	last := rune(existing[len(existing)-1])
	first := rune(chunk[0])

	if unicode.IsSpace(last) || unicode.IsSpace(first) {
		return existing + chunk
	}

	return existing + " " + chunk
}
