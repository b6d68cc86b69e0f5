package stages

import (
	"strings"

	"gittrainer/internal/domain"
)

func advancedStages() []domain.Stage {
	return []domain.Stage{
		rebaseOnto(),
		reflogRescue(),
		bisectStart(),
		worktreeHotfix(),
		bundleExport(),
		notesNamespace(),
		replaceObject(),
		mergeStrategyOurs(),
		mergeThenCleanup(),
		finalAmend(),
	}
}

func rebaseOnto() domain.Stage {
	return domain.Stage{
		ID:        11,
		Title:     "Rebase Onto",
		Objective: "Replant the feature branch onto main, leaving the old-base commit behind.",
		Hint:      "git rebase --onto main old-base feature",
		Solution:  "git checkout feature && git rebase --onto main old-base feature",
		Info: "rebase --onto moves a span of commits to a new base.\n" +
			"Use it when work was started on the wrong base branch.\n" +
			"Getting the old-base boundary wrong replants commits you meant to keep out.",
		Setup: func(ws domain.StageWorkspace) error {
			if err := commitFile(ws, "core.py", "VERSION=1\n", "Core baseline"); err != nil {
				return err
			}
			if err := ws.Git("checkout", "-b", "old-base"); err != nil {
				return err
			}
			if err := commitFile(ws, "feature.py", "mode='old'\n", "Old: first"); err != nil {
				return err
			}
			if err := ws.Git("checkout", "-b", "feature"); err != nil {
				return err
			}
			if err := commitFile(ws, "feature.py", "mode='new'\n", "Feature: start"); err != nil {
				return err
			}
			if err := commitFile(ws, "feature.py", "mode='new-final'\n", "Feature: finalize"); err != nil {
				return err
			}
			return ws.Git("checkout", "main")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleBranchIsCurrent, Name: "feature"},
				{Kind: domain.RuleCommitMessageContains, Text: "Feature:", MaxCount: 5},
			},
			MustNotHave: []domain.Rule{
				{Kind: domain.RuleCommitMessageContains, Text: "Old:", MaxCount: 5},
			},
		},
	}
}

func reflogRescue() domain.Stage {
	return domain.Stage{
		ID:        12,
		Title:     "Reflog Rescue",
		Objective: "Recover the critical v2 state using the reflog.",
		Hint:      "git reflog, then git reset --hard <hash>",
		Solution:  "git reflog && git reset --hard <important-v2>",
		Info: "The reflog records every HEAD movement, even ones that look lost.\n" +
			"Use it to recover after a bad reset --hard or rebase.\n" +
			"It is local-only and expires, so rescue sooner rather than later.",
		Setup: func(ws domain.StageWorkspace) error {
			if err := commitFile(ws, "important.py", "value='v1'\n", "Important v1"); err != nil {
				return err
			}
			if err := commitFile(ws, "important.py", "value='critical-v2'\n", "Important v2"); err != nil {
				return err
			}
			if err := commitFile(ws, "important.py", "value='temporary-v3'\n", "Temporary v3"); err != nil {
				return err
			}
			return ws.Git("reset", "--hard", "HEAD~2")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleFileContains, Path: "important.py", Text: "critical-v2"},
			},
		},
	}
}

func bisectStart() domain.Stage {
	return domain.Stage{
		ID:        13,
		Title:     "Bisect Start",
		Objective: "Start a bisect session and record good/bad commits.",
		Hint:      "git bisect start, then git bisect bad and git bisect good <hash>",
		Solution:  "git bisect start && git bisect bad && git bisect good <first-commit>",
		Info: "Bisect binary-searches history between a good and a bad commit.\n" +
			"Use it when you have no idea which commit introduced a bug.\n" +
			"A crisp pass/fail check at each step is what makes it fast and exact.",
		Setup: func(ws domain.StageWorkspace) error {
			if err := commitFile(ws, "bug.py", "def ok():\n    return 1\n", "good base"); err != nil {
				return err
			}
			if err := commitFile(ws, "bug.py", "def ok():\n    return 2\n", "still good"); err != nil {
				return err
			}
			return commitFile(ws, "bug.py", "def ok():\n    return 0  # BUG\n", "introduce BUG")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleFileExists, Path: ".git/BISECT_LOG"},
			},
		},
	}
}

func worktreeHotfix() domain.Stage {
	return domain.Stage{
		ID:        14,
		Title:     "Worktree Hotfix",
		Objective: "Create a hotfix branch in a linked worktree and commit 'Hotfix WT' there.",
		Hint:      "git worktree add ../hotfix -b hotfix, then commit inside it with git -C",
		Solution:  "git worktree add ../hotfix -b hotfix && git -C ../hotfix commit --allow-empty -m 'Hotfix WT patch'",
		Info: "Worktrees let one repository check out several branches in separate directories.\n" +
			"Use them to run a hotfix alongside ongoing work on main.\n" +
			"Keep track of which branch each worktree has checked out.",
		Setup: func(ws domain.StageWorkspace) error {
			return commitFile(ws, "app.py", "def main():\n    return 'ok'\n", "Prod baseline")
		},
		// The commit lands on the hotfix branch, which is not reachable
		// from HEAD of the main worktree, so this reads the branch directly.
		Validator: domain.ValidatorFunc(func(repo domain.RepoInspector) (bool, string) {
			exists, err := repo.BranchExists("hotfix")
			if err != nil || !exists {
				return false, "missing: branch \"hotfix\" created from a worktree"
			}
			messages, err := repo.RecentMessagesOf("hotfix", 5)
			if err != nil {
				return false, "missing: a commit on the hotfix branch"
			}
			for _, msg := range messages {
				if strings.Contains(msg, "Hotfix WT") {
					return true, "all objectives met"
				}
			}
			return false, "missing: a hotfix commit containing \"Hotfix WT\""
		}),
	}
}

func bundleExport() domain.Stage {
	return domain.Stage{
		ID:        15,
		Title:     "Bundle Export",
		Objective: "Create feature.bundle for offline sharing.",
		Hint:      "git bundle create feature.bundle HEAD",
		Solution:  "git bundle create feature.bundle HEAD",
		Info: "A bundle packs refs and objects into one file that travels without a network.\n" +
			"Use it to move history across air-gapped or restricted environments.\n" +
			"Verify after creating that the bundle covers the refs you need.",
		Setup: func(ws domain.StageWorkspace) error {
			return commitFile(ws, "offline.md", "# Offline\n", "Offline docs")
		},
		// A real bundle starts with a "# vN git bundle" signature line
		Validator: domain.ValidatorFunc(func(repo domain.RepoInspector) (bool, string) {
			if !repo.FileExists("feature.bundle") {
				return false, "missing: feature.bundle"
			}
			if !repo.FileContains("feature.bundle", "git bundle") {
				return false, "missing: feature.bundle is not a valid bundle"
			}
			return true, "all objectives met"
		}),
	}
}

func notesNamespace() domain.Stage {
	return domain.Stage{
		ID:        16,
		Title:     "Notes Namespace",
		Objective: "Add a note in the team notes namespace.",
		Hint:      "git notes --ref=team add -m 'review'",
		Solution:  "git notes --ref=team add -m 'review'",
		Info: "Notes attach metadata to commits without rewriting them.\n" +
			"Use namespaced refs to keep review comments or tracking data separate.\n" +
			"Agree with the team on how notes refs are shared before pushing them.",
		Setup: func(ws domain.StageWorkspace) error {
			return commitFile(ws, "docs.md", "# Docs\n", "Add docs")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleFileExists, Path: ".git/refs/notes/team"},
			},
		},
	}
}

func replaceObject() domain.Stage {
	return domain.Stage{
		ID:        17,
		Title:     "Replace Object",
		Objective: "Create a replace ref with git replace.",
		Hint:      "git log --oneline, then git replace <old> <new>",
		Solution:  "git replace <bad-commit> <good-commit>",
		Info: "Replace points git at a substitute object without touching the original.\n" +
			"Use it for history experiments or to trial a repair locally.\n" +
			"Replace refs are local by default; confirm how they propagate before relying on them.",
		Setup: func(ws domain.StageWorkspace) error {
			if err := commitFile(ws, "data.txt", "bad\n", "Bad data"); err != nil {
				return err
			}
			return commitFile(ws, "data.txt", "good\n", "Good data")
		},
		Validator: domain.ValidatorFunc(func(repo domain.RepoInspector) (bool, string) {
			refs, err := repo.ListDir(".git/refs/replace")
			if err != nil || len(refs) == 0 {
				return false, "missing: a ref under .git/refs/replace"
			}
			return true, "all objectives met"
		}),
	}
}

func mergeStrategyOurs() domain.Stage {
	return domain.Stage{
		ID:        18,
		Title:     "Merge Strategy Ours",
		Objective: "Merge feature-merge with -X ours, keeping the main configuration.",
		Hint:      "git merge -X ours feature-merge",
		Solution:  "git merge -X ours feature-merge",
		Info: "-X ours resolves conflicting hunks in favor of the current branch.\n" +
			"Use it to record the integration while keeping your stable settings.\n" +
			"The other side's conflicting changes are dropped, so review the intent first.",
		Setup: func(ws domain.StageWorkspace) error {
			if err := commitFile(ws, "config.yml", "mode: main\n", "Base config"); err != nil {
				return err
			}
			if err := ws.Git("checkout", "-b", "feature-merge"); err != nil {
				return err
			}
			if err := commitFile(ws, "config.yml", "mode: feature\n", "Feature config"); err != nil {
				return err
			}
			if err := ws.Git("checkout", "main"); err != nil {
				return err
			}
			return commitFile(ws, "config.yml", "mode: main-stable\n", "Main stable config")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleHasMergeCommits},
				{Kind: domain.RuleFileContains, Path: "config.yml", Text: "mode: main"},
			},
		},
	}
}

func mergeThenCleanup() domain.Stage {
	return domain.Stage{
		ID:        19,
		Title:     "Merge Then Cleanup Branch",
		Objective: "Merge feature-cleanup, then delete the branch.",
		Hint:      "git merge feature-cleanup && git branch -d feature-cleanup",
		Solution:  "git merge --no-ff feature-cleanup && git branch -d feature-cleanup",
		Info: "Deleting a merged branch ends its lifecycle and keeps the repository tidy.\n" +
			"Do it once the feature has fully landed.\n" +
			"Check the work is merged everywhere it matters before deleting.",
		Setup: func(ws domain.StageWorkspace) error {
			if err := commitFile(ws, "cleanup.txt", "todo\n", "Base cleanup"); err != nil {
				return err
			}
			if err := ws.Git("checkout", "-b", "feature-cleanup"); err != nil {
				return err
			}
			if err := commitFile(ws, "cleanup.txt", "done\n", "Cleanup done"); err != nil {
				return err
			}
			return ws.Git("checkout", "main")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleHasMergeCommits},
			},
			MustNotHave: []domain.Rule{
				{Kind: domain.RuleBranchExists, Name: "feature-cleanup"},
			},
		},
	}
}

func finalAmend() domain.Stage {
	return domain.Stage{
		ID:        20,
		Title:     "Final Amend",
		Objective: "Fold the staged change into the last commit and retitle it Final:.",
		Hint:      "git commit --amend",
		Solution:  "git commit --amend -m 'Final: polished version'",
		Info: "Amend folds staged changes into the previous commit and lets you rewrite its message.\n" +
			"Use it as the last polish after addressing review feedback.\n" +
			"Amending an already-shared commit rewrites history, so agree on it with the team.",
		Setup: func(ws domain.StageWorkspace) error {
			if err := commitFile(ws, "final.txt", "v1\n", "Draft final"); err != nil {
				return err
			}
			if err := ws.WriteFile("final.txt", "v2-ready\n"); err != nil {
				return err
			}
			return ws.Git("add", "final.txt")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleWorktreeClean},
				{Kind: domain.RuleHeadMessageContains, Text: "Final:"},
			},
		},
	}
}
