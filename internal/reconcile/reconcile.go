package reconcile

import (
	"github.com/mediasweep/thumbsweep/internal/model"
	"github.com/mediasweep/thumbsweep/internal/naming"
)

// PlanFolder reconciles the files of a single folder and returns one
// decision per derivative. Matching is confined to the folder's own image
// subset: non-image files are never candidates, and files from other
// folders are invisible here.
//
// A derivative with at least one plausible main file is marked for
// deletion together with its matches; a derivative with none is retained
// so the caller can surface it for manual review.
func PlanFolder(rules naming.Ruleset, dir string, names []string) model.FolderPlan {
	plan := model.FolderPlan{
		Dir:   dir,
		Files: len(names),
	}

	images := make([]string, 0, len(names))
	for _, name := range names {
		if rules.IsImage(name) {
			images = append(images, name)
		}
	}
	plan.Images = len(images)

	for _, name := range images {
		if !rules.IsDerivative(name) {
			plan.Mains++
			continue
		}
		plan.Derivatives++

		base := rules.BaseIdentity(name)
		decision := model.FileDecision{
			Name:         name,
			Action:       model.ActionRetain,
			BaseIdentity: base,
		}
		if matches := rules.FindMains(base, images); len(matches) > 0 {
			decision.Action = model.ActionDelete
			decision.Matches = matches
		}
		plan.Decisions = append(plan.Decisions, decision)
	}
	return plan
}
