package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleProjects is a small well-formed dataset with four energy types,
// one non-numeric capacity, one missing type and one malformed line.
const SampleProjects = "Proyecto;Tipo;Capacidad;Departamento\n" +
	"Parque Solar La Loma;Solar;150;Cesar\n" +
	"Eolico Alpha;Eolica;212.4;La Guajira\n" +
	"PCH El Molino;Hidro;19.9;Antioquia\n" +
	"Granja Solar Baranoa;Solar;9.9;Atlantico\n" +
	"Eolico Beta;Eolica;sin dato;La Guajira\n" +
	"Biogas Doña Juana;;1.2;Bogota\n" +
	"Solar Castilla;Solar;20;Meta;extra\n" +
	"Termo Biomasa Sur;Biomasa;3;Valle\n"

// ExampleProjects is the three-row dataset from the project brief
const ExampleProjects = "Proyecto;Tipo;Capacidad\nA;Solar;10\nB;Eolica;bad\nC;Solar;5\n"

// WriteProjectsCSV writes content to meta_FNCER.csv in a fresh temp directory
func WriteProjectsCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "meta_FNCER.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
