package ops

import (
	"encoding/json"

	"github.com/archimate-engine/batchmut/internal/engineerr"
)

// MoveToFolderOp is the decoded "moveToFolder" operation. FolderRef holds
// whichever alias was supplied — folderId, folder, parentType, or
// parentFolder — the compiler's folder resolver (internal/model.ResolveFolder)
// accepts all four forms uniformly.
type MoveToFolderOp struct {
	ID        string
	FolderRef string
}

func decodeMoveToFolder(raw json.RawMessage, index int) (*MoveToFolderOp, *engineerr.Error) {
	var wire struct {
		ID            string `json:"id"`
		FolderID      string `json:"folderId,omitempty"`
		Folder        string `json:"folder,omitempty"`
		ParentType    string `json:"parentType,omitempty"`
		ParentFolder  string `json:"parentFolder,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "moveToFolder: "+err.Error())
	}
	ref := firstNonEmpty(wire.FolderID, wire.Folder, wire.ParentType, wire.ParentFolder)
	if wire.ID == "" || ref == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index,
			"moveToFolder requires id and one of folderId/folder/parentType/parentFolder")
	}
	return &MoveToFolderOp{ID: wire.ID, FolderRef: ref}, nil
}

// CreateFolderOp is the decoded "createFolder" operation.
type CreateFolderOp struct {
	Name          string
	ParentRef     string
	Documentation string
	TempID        string
}

func decodeCreateFolder(raw json.RawMessage, index int) (*CreateFolderOp, *engineerr.Error) {
	var wire struct {
		Name          string `json:"name"`
		ParentID      string `json:"parentId,omitempty"`
		ParentType    string `json:"parentType,omitempty"`
		ParentFolder  string `json:"parentFolder,omitempty"`
		Documentation string `json:"documentation,omitempty"`
		TempID        string `json:"tempId,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "createFolder: "+err.Error())
	}
	ref := firstNonEmpty(wire.ParentID, wire.ParentType, wire.ParentFolder)
	if wire.Name == "" || ref == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index,
			"createFolder requires name and one of parentId/parentType/parentFolder")
	}
	return &CreateFolderOp{
		Name:          wire.Name,
		ParentRef:     ref,
		Documentation: wire.Documentation,
		TempID:        wire.TempID,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
