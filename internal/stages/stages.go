package stages

import (
	"gittrainer/internal/domain"
)

func basicStages() []domain.Stage {
	return []domain.Stage{
		cherryPickHotfix(),
		rebaseSquash(),
		conflictMerge(),
		resetRecovery(),
		releaseHotfix(),
		featureBranchStart(),
		stashPractice(),
		releaseTag(),
		cherryPickRange(),
		revertBadCommit(),
	}
}

func cherryPickHotfix() domain.Stage {
	return domain.Stage{
		ID:        1,
		Title:     "Cherry-pick Hotfix",
		Objective: "Cherry-pick the hotfix branch commit onto main.",
		Hint:      "git log --oneline hotfix, then git cherry-pick <hash>",
		Solution:  "git cherry-pick <hotfix-commit>",
		Info: "Cherry-pick copies a single commit from another branch onto the current one.\n" +
			"Use it when a hotfix must land on main without merging the whole branch.\n" +
			"Applying the same change twice can produce conflicts or duplicate commits.",
		Setup: func(ws domain.StageWorkspace) error {
			if err := commitFile(ws, "app.cfg", "feature=false\nhotfix=false\n", "Base config"); err != nil {
				return err
			}
			if err := ws.Git("checkout", "-b", "hotfix"); err != nil {
				return err
			}
			if err := commitFile(ws, "app.cfg", "feature=false\nhotfix=true\n", "Hotfix: enable runtime patch"); err != nil {
				return err
			}
			return ws.Git("checkout", "main")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleFileContains, Path: "app.cfg", Text: "hotfix=true"},
				{Kind: domain.RuleHeadMessageContains, Text: "Hotfix:"},
			},
		},
	}
}

func rebaseSquash() domain.Stage {
	return domain.Stage{
		ID:        2,
		Title:     "Rebase Squash",
		Objective: "Squash the history down to at most 2 commits, with the last message starting with Feature:.",
		Hint:      "git rebase -i HEAD~2 (or HEAD~3)",
		Solution:  "git rebase -i, squash the WIP commits, reword to Feature: ...",
		Info: "Interactive rebase rewrites a run of commits: squash, drop, reword.\n" +
			"Use it to tidy WIP commits before opening a pull request.\n" +
			"Never rebase commits that are already shared on a collaborative branch.",
		Setup: func(ws domain.StageWorkspace) error {
			if err := commitFile(ws, "feature.py", "FLAG = False\n", "Init feature"); err != nil {
				return err
			}
			if err := commitFile(ws, "feature.py", "FLAG = True\n", "WIP flag"); err != nil {
				return err
			}
			return commitFile(ws, "feature.py", "FLAG = True\nMODE = 'safe'\n", "WIP mode")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleCommitCountAtMost, Bound: 2, MaxCount: 10},
				{Kind: domain.RuleHeadMessageContains, Text: "Feature:"},
			},
		},
	}
}

func conflictMerge() domain.Stage {
	return domain.Stage{
		ID:        3,
		Title:     "Conflict Merge",
		Objective: "Merge feature-ui into main and finish without conflict markers.",
		Hint:      "git merge feature-ui, resolve the conflict, then add and commit",
		Solution:  "git merge feature-ui",
		Info: "A merge combines two branches; overlapping edits must be resolved by hand.\n" +
			"This is the everyday path for integrating a feature branch into main.\n" +
			"Make sure no conflict markers (<<<<<<<, >>>>>>>) survive in the files.",
		Setup: func(ws domain.StageWorkspace) error {
			if err := commitFile(ws, "README.md", "mode=main\n", "Base README"); err != nil {
				return err
			}
			if err := ws.Git("checkout", "-b", "feature-ui"); err != nil {
				return err
			}
			if err := commitFile(ws, "README.md", "mode=feature-ui\n", "UI tweak"); err != nil {
				return err
			}
			if err := ws.Git("checkout", "main"); err != nil {
				return err
			}
			return commitFile(ws, "README.md", "mode=main-hardening\n", "Main hardening")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleHasMergeCommits},
			},
			MustNotHave: []domain.Rule{
				{Kind: domain.RuleFileContains, Path: "README.md", Text: "<<<<<<<"},
				{Kind: domain.RuleFileContains, Path: "README.md", Text: ">>>>>>>"},
			},
		},
	}
}

func resetRecovery() domain.Stage {
	return domain.Stage{
		ID:        4,
		Title:     "Reset Recovery",
		Objective: "Remove the lost draft and finish with a clean working tree.",
		Hint:      "Use reset --soft or --mixed to rework history and the files.",
		Solution:  "git reset --hard HEAD~1",
		Info: "Reset moves HEAD and, depending on the mode, the index and working tree.\n" +
			"Use it to undo local commits before they are shared.\n" +
			"--hard discards changes; keep the reflog in mind as your safety net.",
		Setup: func(ws domain.StageWorkspace) error {
			if err := commitFile(ws, "notes.txt", "stable\n", "Stable notes"); err != nil {
				return err
			}
			return commitFile(ws, "notes.txt", "stable\nlost draft\n", "WIP draft")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleFileContains, Path: "notes.txt", Text: "stable"},
				{Kind: domain.RuleWorktreeClean},
			},
			MustNotHave: []domain.Rule{
				{Kind: domain.RuleFileContains, Path: "notes.txt", Text: "lost draft"},
			},
		},
	}
}

func releaseHotfix() domain.Stage {
	return domain.Stage{
		ID:        5,
		Title:     "Release Hotfix",
		Objective: "Bring the release branch change onto main and leave a commit mentioning fix.",
		Hint:      "Work on the release branch, then land it on main with a lowercase 'fix' in the message.",
		Solution:  "git merge release (or cherry-pick), then git commit --amend -m 'fix: bring release change'",
		Info: "Release branches isolate what ships; urgent corrections flow back to main.\n" +
			"Use this right before or after a deployment.\n" +
			"A consistent message convention (fix) keeps the intent of the change visible.",
		Setup: func(ws domain.StageWorkspace) error {
			if err := commitFile(ws, "service.py", "def add(a, b):\n    return a + b\n", "Service baseline"); err != nil {
				return err
			}
			if err := ws.Git("checkout", "-b", "release"); err != nil {
				return err
			}
			content := "def add(a, b):\n    return a + b\n\ndef sub(a, b):\n    return a - b\n"
			if err := commitFile(ws, "service.py", content, "Release prep"); err != nil {
				return err
			}
			return ws.Git("checkout", "main")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleFileContains, Path: "service.py", Text: "def sub"},
				{Kind: domain.RuleHeadMessageContains, Text: "fix"},
			},
		},
	}
}

func featureBranchStart() domain.Stage {
	return domain.Stage{
		ID:        6,
		Title:     "Feature Branch Start",
		Objective: "Create a feature/auth branch and make a Feature: commit on it.",
		Hint:      "git checkout -b feature/auth",
		Solution:  "git checkout -b feature/auth && git commit -am 'Feature: enable auth'",
		Info: "A feature branch isolates new work from main.\n" +
			"Use it whenever parallel work needs to keep main releasable.\n" +
			"Stick to the branch naming and commit message conventions from the start.",
		Setup: func(ws domain.StageWorkspace) error {
			return commitFile(ws, "auth.py", "ENABLED = False\n", "Base auth")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleBranchExists, Name: "feature/auth"},
				{Kind: domain.RuleBranchIsCurrent, Name: "feature/auth"},
				{Kind: domain.RuleHeadMessageContains, Text: "Feature:"},
			},
		},
	}
}

func stashPractice() domain.Stage {
	return domain.Stage{
		ID:        7,
		Title:     "Stash Practice",
		Objective: "Keep at least one stash entry while api.py ends up with timeout=60.",
		Hint:      "Edit api.py, then practice stash push and apply.",
		Solution:  "sed -i 's/timeout=30/timeout=60/' api.py && git stash push -m 'api timeout' && git stash apply",
		Info: "Stash parks uncommitted changes so the working tree is clean again.\n" +
			"Use it when you must switch branches or handle a review mid-edit.\n" +
			"Always check for conflicts after stash apply or pop.",
		Setup: func(ws domain.StageWorkspace) error {
			if err := ws.WriteFile("api.py", "timeout=30\n"); err != nil {
				return err
			}
			if err := ws.WriteFile("worker.py", "retry=1\n"); err != nil {
				return err
			}
			if err := ws.Git("add", "api.py", "worker.py"); err != nil {
				return err
			}
			return ws.Git("commit", "-m", "Base services")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleStashCountAtLeast, Bound: 1},
				{Kind: domain.RuleFileContains, Path: "api.py", Text: "timeout=60"},
			},
		},
	}
}

func releaseTag() domain.Stage {
	return domain.Stage{
		ID:        8,
		Title:     "Release Tag",
		Objective: "Create a v1.0.0 tag.",
		Hint:      "git tag -a v1.0.0 -m 'release v1.0.0'",
		Solution:  "git tag -a v1.0.0 -m 'release'",
		Info: "A tag pins a version name to one commit, marking a release point.\n" +
			"Use it to freeze deployed versions and anchor rollbacks.\n" +
			"Annotated tags carry author and message, which makes the history clearer.",
		Setup: func(ws domain.StageWorkspace) error {
			return commitFile(ws, "CHANGELOG.md", "v0.1.0\n", "Prepare release")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleFileExists, Path: ".git/refs/tags/v1.0.0"},
			},
		},
	}
}

func cherryPickRange() domain.Stage {
	return domain.Stage{
		ID:        9,
		Title:     "Cherry-pick Range",
		Objective: "Bring only the needed feature-range commits onto main, without merging.",
		Hint:      "git cherry-pick <start>^..<end>",
		Solution:  "git cherry-pick <first-feature-commit>^..<second-feature-commit>",
		Info: "A cherry-pick range copies a span of commits onto the current branch.\n" +
			"Use it to take a subset of a feature branch selectively.\n" +
			"A wrong range boundary (start^..end) drags in commits you did not want.",
		Setup: func(ws domain.StageWorkspace) error {
			if err := commitFile(ws, "svc.py", "base=1\n", "Base service"); err != nil {
				return err
			}
			if err := ws.Git("checkout", "-b", "feature-range"); err != nil {
				return err
			}
			if err := commitFile(ws, "svc.py", "base=1\nlog=true\n", "Feature: add logging"); err != nil {
				return err
			}
			if err := commitFile(ws, "config.py", "ENABLED=True\n", "Feature: add config"); err != nil {
				return err
			}
			if err := commitFile(ws, "docs.txt", "notes\n", "Chore docs"); err != nil {
				return err
			}
			return ws.Git("checkout", "main")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleFileExists, Path: "config.py"},
			},
			MustNotHave: []domain.Rule{
				{Kind: domain.RuleHasMergeCommits},
			},
		},
	}
}

func revertBadCommit() domain.Stage {
	return domain.Stage{
		ID:        10,
		Title:     "Revert Bad Commit",
		Objective: "Undo the buggy commit with git revert.",
		Hint:      "git log --oneline, then git revert <bad-hash>",
		Solution:  "git revert <bad-commit>",
		Info: "Revert creates a new commit that cancels an earlier one.\n" +
			"Use it to undo changes safely on a shared branch.\n" +
			"Unlike reset, the full history stays intact.",
		Setup: func(ws domain.StageWorkspace) error {
			if err := commitFile(ws, "calc.py", "def add(a,b):\n    return a + b\n", "Base calculator"); err != nil {
				return err
			}
			return commitFile(ws, "calc.py", "def add(a,b):\n    return a + b + 1\n", "Bad commit: off by one")
		},
		Validator: domain.RuleSet{
			MustHave: []domain.Rule{
				{Kind: domain.RuleHeadMessageContains, Text: "Revert"},
			},
			MustNotHave: []domain.Rule{
				{Kind: domain.RuleFileContains, Path: "calc.py", Text: "+ 1"},
			},
		},
	}
}
