package domain

// Message identifiers for user-facing text outside announcements.
// Localizers resolve them to the owner's language.
const (
	MsgFiles             = "files"
	MsgUploadedFiles     = "uploadedFiles"
	MsgFilterByName      = "filterByName"
	MsgDeleteDoc         = "deleteDoc"
	MsgReloadDoc         = "reloadDoc"
	MsgReloading         = "reloading"
	MsgReloadDone        = "reloadDone"
	MsgNoSelectedItems   = "noSelectedItems"
	MsgSelectedItems     = "selectedItems"
	MsgSelectedMoreItems = "selectedMoreItems"
	MsgNoDocuments       = "noDocuments"
	MsgLoading           = "loading"
	MsgLanguage          = "language"
	MsgLanguageChanged   = "languageChanged"
	MsgDemoMode          = "demoMode"
	MsgOperationBusy     = "operationBusy"
	MsgDeleted           = "deleted"
)
