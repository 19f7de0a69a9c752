package combo

import (
	"fmt"
	"strings"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/numerology"
)

// PromptBuilder renders the configured directives and the derived figures
// into prompts. It holds no state besides the configuration.
type PromptBuilder struct {
	cfg config.PromptConfig
}

func NewPromptBuilder(cfg config.PromptConfig) *PromptBuilder {
	return &PromptBuilder{cfg: cfg}
}

// System is the instruction block shared by every prompt.
func (b *PromptBuilder) System() string {
	var sb strings.Builder
	sb.WriteString("Você é uma especialista em numerologia, astrologia e espiritualidade.\n")
	if len(b.cfg.Tone) > 0 {
		sb.WriteString("\nEstilo:\n")
		for _, t := range b.cfg.Tone {
			fmt.Fprintf(&sb, "- %s\n", t)
		}
	}
	if len(b.cfg.DisallowedClaims) > 0 {
		sb.WriteString("\nRestrições:\n")
		for _, c := range b.cfg.DisallowedClaims {
			fmt.Fprintf(&sb, "- %s\n", c)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (b *PromptBuilder) facts(r *numerology.Reading) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Nome: %s\n", r.Name)
	fmt.Fprintf(&sb, "Data de nascimento: %s\n", r.BirthDateString())
	fmt.Fprintf(&sb, "Signo solar: %s\n", r.Sign)
	fmt.Fprintf(&sb, "Número do nome: %d\n", r.NameNumber)
	fmt.Fprintf(&sb, "Número da data de nascimento: %d\n", r.DateNumber)
	fmt.Fprintf(&sb, "Número de destino: %d\n", r.Pythagorean.Destiny)
	fmt.Fprintf(&sb, "Número de expressão: %d\n", r.Pythagorean.Expression)
	fmt.Fprintf(&sb, "Número da alma: %d\n", r.Pythagorean.Soul)
	return sb.String()
}

// Section builds the prompt for one plain-text section.
func (b *PromptBuilder) Section(r *numerology.Reading, s config.PromptSection) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Escreva a seção \"%s\" de um relatório personalizado.\n\n", s.Title)
	sb.WriteString(b.facts(r))
	fmt.Fprintf(&sb, "\n%s\n", s.Instruction)
	if b.cfg.OpeningPhrase != "" {
		fmt.Fprintf(&sb, "Comece o texto exatamente com: \"%s\".\n", b.cfg.OpeningPhrase)
	}
	sb.WriteString("Responda somente com texto corrido, sem títulos, sem HTML e sem markdown. Separe parágrafos com uma linha em branco.")
	return sb.String()
}

// Document builds the single prompt asking for a complete HTML document with
// every configured section in order.
func (b *PromptBuilder) Document(r *numerology.Reading) string {
	var sb strings.Builder
	sb.WriteString("Crie um documento HTML completo e autocontido (com <style> embutido), elegante e místico, com o relatório personalizado abaixo.\n\n")
	sb.WriteString(b.facts(r))
	sb.WriteString("\nSeções, nesta ordem exata:\n")
	for i, s := range b.cfg.Sections {
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, s.Title, s.Instruction)
	}
	if b.cfg.OpeningPhrase != "" {
		fmt.Fprintf(&sb, "\nA primeira frase do documento deve ser: \"%s\".\n", b.cfg.OpeningPhrase)
	}
	sb.WriteString("Responda apenas com o HTML, começando em <!DOCTYPE html>.")
	return sb.String()
}
