package entities

import "slices"

// Package тариф публикации
type Package struct {
	ID    string
	Name  string
	Price int64
	// Цена в том виде, в котором ее показывают клиенту
	DisplayPrice string
}

var packages = []Package{
	{ID: "sinta4", Name: "SINTA 4", Price: 1_400_000, DisplayPrice: "Rp 1.400.000"},
	{ID: "sinta5", Name: "SINTA 5", Price: 750_000, DisplayPrice: "Rp 750.000"},
	{ID: "sinta6", Name: "SINTA 6", Price: 500_000, DisplayPrice: "Rp 500.000"},
	{ID: "non-sinta", Name: "Non-SINTA", Price: 350_000, DisplayPrice: "Rp 350.000"},
}

var topics = []string{"Ilmu Komputer", "Matematika", "Fisika", "Kimia", "Biologi"}

var levels = []string{"SINTA 5", "SINTA 6"}

func Packages() []Package {
	return slices.Clone(packages)
}

func Topics() []string {
	return slices.Clone(topics)
}

func Levels() []string {
	return slices.Clone(levels)
}

func FindPackage(id string) (Package, bool) {
	i := slices.IndexFunc(packages, func(p Package) bool { return p.ID == id })
	if i < 0 {
		return Package{}, false
	}
	return packages[i], true
}
