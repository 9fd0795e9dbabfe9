package device

import (
	"strings"

	"github.com/GriffinCanCode/PocketOS/internal/providers/ai"
	"github.com/GriffinCanCode/PocketOS/internal/render"
	"go.uber.org/zap"
)

// App ids of the assistant-backed apps
const (
	ChatApp  = "aiChat"
	ImageApp = "imageGen"
)

const systemPrompt = "You are the built-in assistant of a small handheld device. " +
	"Answer briefly and plainly; replies are shown on a phone screen."

// User-visible texts for assistant results
const (
	ChatFallback     = "Sorry, I couldn't reach the assistant. Please try again."
	StatusThinking   = "Thinking…"
	StatusGenerating = "Generating…"
	StatusDone       = "Done"
	StatusFailed     = "Image generation failed. Please try again."
)

// ChatView is the rendered conversation
type ChatView struct {
	Messages []ai.Message `json:"messages"`
	Busy     bool         `json:"busy"`
}

// SendChat appends a user message and asks the assistant for a reply in
// the background. Only one chat request may be pending at a time.
func (d *Device) SendChat(text string, image []byte) error {
	text = strings.TrimSpace(text)
	if text == "" && len(image) == 0 {
		return ai.ErrEmptyPrompt
	}
	msg := ai.Message{Role: ai.RoleUser, Content: text}
	if len(image) > 0 {
		img, err := ai.NewImage(image)
		if err != nil {
			return err
		}
		msg.Image = img
	}

	var (
		err      error
		messages []ai.Message
	)
	d.loop.Do(func() {
		if err = d.asyncGuard(d.chatBusy); err != nil {
			return
		}
		d.chatBusy = true
		d.chat = append(d.chat, msg)
		messages = append([]ai.Message(nil), d.chat...)
		d.setStatus(ChatApp, StatusThinking)
		d.renderChat()
		d.async.Add(1)
	})
	if err != nil {
		return err
	}

	go func() {
		defer d.async.Done()
		reply, err := d.ai.Chat(d.asyncCtx, messages)

		d.loop.Do(func() {
			d.chatBusy = false
			if err != nil {
				d.logger.Warn("chat failed", zap.Error(err))
				reply = ChatFallback
			}
			d.chat = append(d.chat, ai.Message{Role: ai.RoleAssistant, Content: reply})
			d.setStatus(ChatApp, "")
			d.renderChat()
		})
	}()
	return nil
}

// ChatHistory returns the conversation including the system prompt
func (d *Device) ChatHistory() ChatView {
	var v ChatView
	d.loop.Do(func() { v = d.chatView() })
	return v
}

// ResetChat starts a new conversation unless a reply is pending
func (d *Device) ResetChat() error {
	var err error
	d.loop.Do(func() {
		if d.chatBusy {
			err = ErrBusy
			return
		}
		d.chat = d.chat[:1]
		d.renderChat()
	})
	return err
}

// GenerateImage requests an image in the background. The Image Studio
// status line tracks progress; only one request may be pending.
func (d *Device) GenerateImage(prompt string, aspect ai.AspectRatio) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ai.ErrEmptyPrompt
	}
	if _, err := aspect.Size(); err != nil {
		return err
	}

	var err error
	d.loop.Do(func() {
		if err = d.asyncGuard(d.imageBusy); err != nil {
			return
		}
		d.imageBusy = true
		d.setStatus(ImageApp, StatusGenerating)
		d.async.Add(1)
	})
	if err != nil {
		return err
	}

	go func() {
		defer d.async.Done()
		res, err := d.ai.GenerateImage(d.asyncCtx, prompt, aspect)

		d.loop.Do(func() {
			d.imageBusy = false
			if err != nil {
				d.logger.Warn("image generation failed", zap.Error(err))
				d.setStatus(ImageApp, StatusFailed)
				return
			}
			d.lastImage = &res
			d.sink.Render(render.Event{Kind: render.KindImage, Target: ImageApp, Data: res})
			d.setStatus(ImageApp, StatusDone)
		})
	}()
	return nil
}

// LastImage returns the most recent generated image
func (d *Device) LastImage() (ai.ImageResult, bool) {
	var (
		res ai.ImageResult
		ok  bool
	)
	d.loop.Do(func() {
		if d.lastImage != nil {
			res, ok = *d.lastImage, true
		}
	})
	return res, ok
}

// asyncGuard must run on the loop
func (d *Device) asyncGuard(busy bool) error {
	switch {
	case d.closed:
		return ErrClosed
	case d.ai == nil:
		return ErrNoAIService
	case busy:
		return ErrBusy
	}
	return nil
}

func (d *Device) chatView() ChatView {
	return ChatView{Messages: append([]ai.Message(nil), d.chat...), Busy: d.chatBusy}
}

func (d *Device) renderChat() {
	d.sink.Render(render.Event{Kind: render.KindChat, Target: ChatApp, Data: d.chatView()})
}
