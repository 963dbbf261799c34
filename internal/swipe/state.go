// Package swipe implémente la machine à états de la session de swipe côté
// client : quel candidat est à l'écran, quel panneau est visible, et quand
// redemander une page de candidats. Les transitions sont des fonctions pures
// sur une valeur immuable, testables sans interface graphique.
package swipe

import "github.com/sofuetakuma112/bb-hono/internal/feed"

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Trois panneaux empilés par candidat : image, hashtags, prompt.
const maxScrollIndex = 2

// State est l'instantané sérialisable d'un onglet de swipe (recommend ou
// following). Les indices sont persistés côté client, jamais côté serveur.
type State struct {
	Candidates   []feed.Post `json:"-"`
	CurrentIndex int         `json:"current_index"`
	ScrollIndex  int         `json:"scroll_index"`
	NoMoreCards  bool        `json:"no_more_cards"`
	// Séquence de la dernière requête de fetch émise. Une réponse portant
	// une séquence plus ancienne est obsolète et doit être ignorée.
	FetchSeq uint64 `json:"-"`
}

// Current renvoie le candidat à l'écran. ok=false quand la liste est vide ou
// que l'index pointe hors limites : état terminal "rien à montrer", pas une
// erreur.
func (s State) Current() (feed.Post, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Candidates) {
		return feed.Post{}, false
	}
	return s.Candidates[s.CurrentIndex], true
}

// Advance avance au candidat suivant après qu'une réaction a été enregistrée.
// Le scroll revient au premier panneau ; en bout de liste, l'index repart à 0
// et NoMoreCards passe à vrai pour déclencher un refetch chez l'appelant.
func Advance(s State) State {
	if s.ScrollIndex != 0 {
		s.ScrollIndex = 0
	}
	next := s.CurrentIndex + 1
	if next >= len(s.Candidates) {
		s.CurrentIndex = 0
		s.NoMoreCards = true
		return s
	}
	s.CurrentIndex = next
	return s
}

// Scroll déplace le panneau visible d'un cran, borné à [0, 2].
func Scroll(s State, d Direction) State {
	if d == DirectionUp {
		s.ScrollIndex--
	} else {
		s.ScrollIndex++
	}
	if s.ScrollIndex < 0 {
		s.ScrollIndex = 0
	}
	if s.ScrollIndex > maxScrollIndex {
		s.ScrollIndex = maxScrollIndex
	}
	return s
}

// RequestReload prépare un refetch explicite : l'index revient à 0 et la
// séquence retournée doit accompagner le ApplyFetch correspondant.
func RequestReload(s State) (State, uint64) {
	s.FetchSeq++
	s.CurrentIndex = 0
	return s, s.FetchSeq
}

// RequestRefetch prépare le refetch automatique déclenché par NoMoreCards,
// sans toucher à l'index.
func RequestRefetch(s State) (State, uint64) {
	s.FetchSeq++
	return s, s.FetchSeq
}

// ApplyFetch remplace la liste de candidats en place. Dernière requête
// gagnante : une réponse dont la séquence n'est pas la dernière émise est
// écartée telle quelle. Les index ne sont pas recalés sur la nouvelle liste ;
// un index hors limites se résout en "rien à montrer" à la transition
// suivante.
func ApplyFetch(s State, seq uint64, candidates []feed.Post) State {
	if seq != s.FetchSeq {
		return s
	}
	s.Candidates = candidates
	s.NoMoreCards = false
	return s
}
