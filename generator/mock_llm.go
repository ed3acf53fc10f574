package generator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	loremgen "github.com/bozaro/golorem"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
// Section prompts get lorem-ipsum HTML; image prompt requests get fixed terms.
type MockLLM struct {
	mu  sync.Mutex
	gen *loremgen.Lorem
}

func NewMockLLM() *MockLLM {
	return &MockLLM{gen: loremgen.New()}
}

func (m *MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	if prompt.System == imageSystemMessage {
		return "Technology\nWorkspace\nNetwork\n", nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h2>%s</h2>\n", strings.TrimSuffix(m.gen.Sentence(2, 5), ".")))
	for i := 0; i < 3; i++ {
		sb.WriteString(fmt.Sprintf("<p>%s</p>\n", m.gen.Paragraph(3, 5)))
	}
	return sb.String(), nil
}
