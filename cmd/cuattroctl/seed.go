package main

import (
	"fmt"
	"io"
	"strings"

	"cuattro/internal/catalog"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// seedFile is the catalog import format.
//
//	items:
//	  - nome: Suco de laranja
//	    preco: 12.50
//	    unidadeMedida: L
//	    quantidade: 1
//	    categoria: Bebidas
type seedFile struct {
	Items []seedItem `yaml:"items"`
}

type seedItem struct {
	Name         string   `yaml:"nome"`
	Description  string   `yaml:"descricao"`
	Price        float64  `yaml:"preco"`
	Unit         string   `yaml:"unidadeMedida"`
	BaseQuantity int      `yaml:"quantidade"`
	Category     string   `yaml:"categoria"`
	ImageURL     string   `yaml:"imagemUrl"`
	Available    *bool    `yaml:"disponivel"`
	Featured     bool     `yaml:"destaque"`
	DisplayOrder int      `yaml:"ordem"`
	Tags         []string `yaml:"tags"`
}

func readSeed(r io.Reader) (*seedFile, error) {
	var seed seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	for i, it := range seed.Items {
		if strings.TrimSpace(it.Name) == "" {
			return nil, fmt.Errorf("item %d: nome is required", i+1)
		}
		if it.Price < 0 {
			return nil, fmt.Errorf("item %q: preco must not be negative", it.Name)
		}
	}
	return &seed, nil
}

// input converts the seed entry; the category is bound by id by the caller.
func (s seedItem) input(categoryID *int) catalog.ItemInput {
	in := catalog.ItemInput{
		Name:         strings.TrimSpace(s.Name),
		Description:  s.Description,
		Price:        decimal.NewFromFloat(s.Price).Round(2),
		Unit:         s.Unit,
		BaseQuantity: s.BaseQuantity,
		CategoryID:   categoryID,
		Available:    s.Available,
		Featured:     s.Featured,
		DisplayOrder: s.DisplayOrder,
		Tags:         s.Tags,
	}
	if in.Unit == "" {
		in.Unit = "unidade"
	}
	if s.ImageURL != "" {
		url := s.ImageURL
		in.ImageURL = &url
	}
	return in
}
