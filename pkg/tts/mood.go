package tts

import "strings"

// Mood is the facial expression matching an utterance.
type Mood string

const (
	MoodNeutral  Mood = "neutral"
	MoodGreeting Mood = "greeting"
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodAngry    Mood = "angry"
	MoodLove     Mood = "love"
)

// moodWords is checked in order; the first group with a hit wins.
var moodWords = []struct {
	mood  Mood
	words []string
}{
	{MoodGreeting, []string{"hi", "hello", "hey"}},
	{MoodHappy, []string{"happy", "smile", "good"}},
	{MoodSad, []string{"sad", "cry", "bad"}},
	{MoodAngry, []string{"angry", "mad"}},
	{MoodLove, []string{"love", "heart"}},
}

// MoodOf classifies text by keyword, defaulting to neutral.
func MoodOf(text string) Mood {
	words := strings.Fields(strings.ToLower(text))
	for _, group := range moodWords {
		for _, keyword := range group.words {
			for _, w := range words {
				if strings.Trim(w, ".,!?") == keyword {
					return group.mood
				}
			}
		}
	}
	return MoodNeutral
}
