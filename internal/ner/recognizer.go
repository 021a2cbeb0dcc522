// Package ner 命名实体识别，模型在启动时加载一次，之后只读共享
package ner

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

const (
	LabelPerson = "PERSON"
	LabelGPE    = "GPE" // 地名
)

// DefaultPrefixLength 送入模型的默认文本前缀长度(字符)
const DefaultPrefixLength = 1000

// Entity 识别出的实体
type Entity struct {
	Text  string
	Label string
}

// Recognizer 实体识别接口，便于测试替换
type Recognizer interface {
	Entities(text string) []Entity
}

// ProseRecognizer 基于 prose 内置英文模型的识别器
type ProseRecognizer struct {
	model *prose.Model
}

var _ Recognizer = (*ProseRecognizer)(nil)

// LoadProseRecognizer 加载 prose 模型
// 加载失败时返回错误，调用方应终止启动
func LoadProseRecognizer() (rec *ProseRecognizer, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec, err = nil, fmt.Errorf("加载NER模型时发生panic: %v", r)
		}
	}()

	// prose 在首次创建文档时加载内置模型，这里取出模型句柄供后续复用
	doc, err := prose.NewDocument("Jane Doe lives in London.",
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("加载NER模型失败: %w", err)
	}
	if doc.Model == nil {
		return nil, fmt.Errorf("加载NER模型失败: 模型为空")
	}
	return &ProseRecognizer{model: doc.Model}, nil
}

// Entities 返回文本中的实体，按出现顺序
// 识别失败时返回 nil，不向上传递错误
func (r *ProseRecognizer) Entities(text string) (entities []Entity) {
	if text == "" {
		return nil
	}
	defer func() {
		if recover() != nil {
			entities = nil
		}
	}()

	doc, err := prose.NewDocument(text,
		prose.UsingModel(r.model),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil
	}

	for _, ent := range doc.Entities() {
		entities = append(entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	return entities
}

// Filter 清洗候选实体，返回空串表示丢弃
// line 为实体所在的整行文本
type Filter func(entity, line string) string

// FirstEntity 在文本前 prefix 个字符中逐行查找第一个指定标签的实体
// 按行送入模型，实体不会跨行；filter 为 nil 时只去掉首尾空白
// prefix <= 0 时使用 DefaultPrefixLength；未找到返回空串
func FirstEntity(r Recognizer, text, label string, prefix int, filter Filter) string {
	if r == nil || text == "" {
		return ""
	}
	for _, line := range strings.Split(Prefix(text, prefix), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, ent := range r.Entities(line) {
			if ent.Label != label {
				continue
			}
			candidate := strings.TrimSpace(ent.Text)
			if filter != nil {
				candidate = filter(candidate, line)
			}
			if candidate != "" {
				return candidate
			}
		}
	}
	return ""
}

// Prefix 按字符截取文本前缀
func Prefix(text string, n int) string {
	if n <= 0 {
		n = DefaultPrefixLength
	}
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}
