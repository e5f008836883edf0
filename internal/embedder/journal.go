package embedder

import "fmt"

// Journal accumule les lignes de log ordonnées d'une opération
// d'embarquement. Chaque étape du pipeline y consigne son issue
// (succès/avertissement/erreur) ; la liste est destinée à la fois aux logs
// opérateur et à l'affichage utilisateur final.
type Journal struct {
	lines []string
}

func (j *Journal) Infof(format string, args ...any) {
	j.lines = append(j.lines, fmt.Sprintf(format, args...))
}

func (j *Journal) Warnf(format string, args ...any) {
	j.lines = append(j.lines, "warning : "+fmt.Sprintf(format, args...))
}

func (j *Journal) Errorf(format string, args ...any) {
	j.lines = append(j.lines, "erreur : "+fmt.Sprintf(format, args...))
}

// Lines retourne les lignes dans l'ordre d'émission.
func (j *Journal) Lines() []string {
	return j.lines
}
