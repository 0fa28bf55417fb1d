package anthropic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseText(t *testing.T) {
	resp := &MessageResponse{
		Content: []ContentBlock{
			{Type: "text", Text: "Hello "},
			{Type: "tool_use", Text: "ignored"},
			{Type: "text", Text: "world"},
		},
	}
	assert.Equal(t, "Hello world", resp.Text())
}

func TestResponseTextEmpty(t *testing.T) {
	resp := &MessageResponse{}
	assert.Equal(t, "", resp.Text())
}

func TestToSDKMessagesRoles(t *testing.T) {
	msgs := toSDKMessages([]Message{
		{Role: "user", Content: "question"},
		{Role: "assistant", Content: "answer"},
	})
	assert.Len(t, msgs, 2)
	assert.Equal(t, "user", string(msgs[0].Role))
	assert.Equal(t, "assistant", string(msgs[1].Role))
}
