package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/compound-bind/binder"
	"github.com/wippyai/compound-bind/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

func renderDescriptor(d *binder.CompoundDescriptor) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d bytes)", d.Name, d.Size)))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-20s %-10s %6s %6s  %s", "MEMBER", "CLASS", "OFFSET", "SIZE", "EXTRA")))
	b.WriteByte('\n')

	for _, m := range d.Members {
		extra := memberExtra(m)
		b.WriteString(fmt.Sprintf("  %-20s %-10s %6d %6d  %s\n",
			nameStyle.Render(fmt.Sprintf("%-20s", m.Name)),
			m.Info.Class, m.Offset, m.Info.TotalSize(), dimStyle.Render(extra)))
	}

	return b.String()
}

func memberExtra(m binder.Member) string {
	var parts []string
	if len(m.Info.Dims) > 0 {
		parts = append(parts, fmt.Sprintf("dims=%v", m.Info.Dims))
	}
	if m.Info.Class == engine.ClassEnum {
		name := m.EnumName
		if name == "" {
			name = "anonymous"
		}
		parts = append(parts, fmt.Sprintf("enum %s %v", name, m.EnumValues))
	}
	if m.Info.Variant != engine.VariantNone {
		parts = append(parts, "variant="+m.Info.Variant.String())
	}
	return strings.Join(parts, " ")
}

func renderMappings(d *binder.CompoundDescriptor, mappings []binder.FieldMapping) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s bindings", d.Name)))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-20s %-20s %-12s %6s %6s", "MEMBER", "FIELD", "KIND", "OFFSET", "SIZE")))
	b.WriteByte('\n')

	for _, fm := range mappings {
		b.WriteString(fmt.Sprintf("  %s %-20s %-12s %6d %6d\n",
			nameStyle.Render(fmt.Sprintf("%-20s", fm.MemberName)),
			fm.FieldName, fm.Kind, fm.Offset, fm.TotalSize()))
	}

	return b.String()
}

func renderEnums(reg *binder.EnumRegistry) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%d enumeration definitions", reg.Len())))
	b.WriteString("\n\n")

	names := reg.Names()
	sort.Strings(names)
	for _, name := range names {
		def, _ := reg.Lookup(name)
		b.WriteString(fmt.Sprintf("  %s %s\n",
			nameStyle.Render(fmt.Sprintf("%-20s", name)),
			dimStyle.Render(strings.Join(def.Values, ", "))))
	}

	return b.String()
}
