package source

import (
	"context"
	"fmt"
)

// Kind identifies one of the per-protein reports.
type Kind int

const (
	Fasta Kind = iota
	Summary
	Alignments
	Surface
	Conservation
)

var kindNames = map[Kind]string{
	Fasta:        "Fasta",
	Summary:      "Summary",
	Alignments:   "Alignments",
	Surface:      "Surface accessibility",
	Conservation: "Evolutionary conservation",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Reports retrieves the raw text of a protein's prediction reports.
type Reports interface {
	Fetch(ctx context.Context, id string, kind Kind) (string, error)
}

// AnnotationLookup retrieves the raw annotation report of a reference structure.
type AnnotationLookup interface {
	Annotation(ctx context.Context, key string) (string, error)
}

// Files names each report inside a protein's result directory.
type Files struct {
	Fasta        string
	Summary      string
	Alignments   string
	Surface      string
	Conservation string
}

func (f Files) name(kind Kind) (string, error) {
	switch kind {
	case Fasta:
		return f.Fasta, nil
	case Summary:
		return f.Summary, nil
	case Alignments:
		return f.Alignments, nil
	case Surface:
		return f.Surface, nil
	case Conservation:
		return f.Conservation, nil
	}
	return "", fmt.Errorf("unknown report kind %d", int(kind))
}
