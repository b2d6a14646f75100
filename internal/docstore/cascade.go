package docstore

// Native cascades. Each runs inside the deleting transaction and removes
// what the record owns; the caller removes the record itself.

func cascadeProject(tx *txn, id string) {
	for _, chapterID := range tx.st.chapters.children(chapterKind, id) {
		cascadeChapter(tx, chapterID)
		writable(tx, chapterKind, &tx.st.chapters).remove(chapterKind, chapterID)
	}
	for _, characterID := range tx.st.characters.children(characterKind, id) {
		cascadeCharacter(tx, characterID)
		writable(tx, characterKind, &tx.st.characters).remove(characterKind, characterID)
	}
	for _, outfitID := range tx.st.outfits.children(outfitKind, id) {
		writable(tx, outfitKind, &tx.st.outfits).remove(outfitKind, outfitID)
	}
	for _, locationID := range tx.st.locations.children(locationKind, id) {
		writable(tx, locationKind, &tx.st.locations).remove(locationKind, locationID)
	}
}

func cascadeChapter(tx *txn, id string) {
	for _, sceneID := range tx.st.scenes.children(sceneKind, id) {
		cascadeScene(tx, sceneID)
		writable(tx, sceneKind, &tx.st.scenes).remove(sceneKind, sceneID)
	}
}

func cascadeScene(tx *txn, id string) {
	for _, panelID := range tx.st.panels.children(panelKind, id) {
		cascadePanel(tx, panelID)
		writable(tx, panelKind, &tx.st.panels).remove(panelKind, panelID)
	}
}

func cascadePanel(tx *txn, id string) {
	for _, dialogueID := range tx.st.dialogues.children(dialogueKind, id) {
		writable(tx, dialogueKind, &tx.st.dialogues).remove(dialogueKind, dialogueID)
	}
}

// cascadeCharacter clears references instead of deleting: the character
// leaves every panel and every dialogue it speaks loses its speaker.
func cascadeCharacter(tx *txn, id string) {
	for _, panel := range tx.st.panels.rows {
		if panel.HasCharacter(id) {
			writable(tx, panelKind, &tx.st.panels).put(panelKind, withoutCharacter(panel, id))
		}
	}
	for _, dialogue := range tx.st.dialogues.rows {
		if dialogue.SpeakerID == id {
			row := dialogue.Clone()
			row.SpeakerID = ""
			writable(tx, dialogueKind, &tx.st.dialogues).put(dialogueKind, row)
		}
	}
}
