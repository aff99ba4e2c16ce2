package advisor

import "github.com/HarvesConsulting/crop-protection/internal/domain"

// Product rotations are static agronomy data maintained outside this
// service; applications cycle through them by position so consecutive
// treatments never repeat an active-ingredient group.

var lateBlightRotation = []string{
	"Zorvec Encantia", "Ridomil Gold", "Tanos", "Acrobat MZ",
	"Orondis Ultra", "Ranman Top", "Revus Top", "Curzate R", "Infinito",
}

var botrytisRotation = []string{
	"Luna Experience", "Signum", "Scala", "Teldor", "Score", "Nativo",
}

var bacterialRotation = []string{
	"Cuproxat", "Kasumin", "Serenade",
}

// rotationFor returns the product rotation for a secondary disease.
// Alternaria shares the botrytis rotation.
func rotationFor(disease string) []string {
	switch disease {
	case domain.DiseaseGrayMold, domain.DiseaseAlternaria:
		return botrytisRotation
	case domain.DiseaseBacteriosis:
		return bacterialRotation
	}
	return nil
}

// productAt cycles through a rotation by position.
func productAt(rotation []string, i int) string {
	if len(rotation) == 0 {
		return ""
	}
	return rotation[i%len(rotation)]
}
