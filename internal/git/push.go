package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"

	stackererrors "stacker.dev/stacker/internal/errors"
)

// leaseArg builds the --force-with-lease argument asserting the remote value
// of branch. The non-existent sentinel maps to an empty expectation, which
// git reads as "the remote branch must not exist".
func leaseArg(branch Branch, expected ObjectName) string {
	expect := expected.String()
	if expected.IsNonExistent() {
		expect = ""
	}
	return fmt.Sprintf("--force-with-lease=%s:%s", branch.RefName(), expect)
}

// Push publishes branch to remote, asserting the remote branch currently
// holds expectedRemote. A failed assertion is reported as rejected.
//
// Git skips the lease when the remote already holds the pushed commit, so an
// up-to-date result is checked against expectedRemote here.
func (r *Repo) Push(ctx context.Context, branch Branch, remote string, expectedRemote ObjectName) error {
	tip, err := r.runner.Run(ctx, "rev-parse", "--verify", "--quiet", branch.RefName()+"^{commit}")
	if err != nil {
		return reclassify(err, stackererrors.KindNotFound)
	}
	refspec := tip + ":" + branch.RefName()
	stdout, stderr, err := r.runner.RunCaptured(ctx, "push", "--porcelain", leaseArg(branch, expectedRemote), remote, refspec)
	if err != nil {
		if isPushRejection(stdout) || isPushRejection(stderr) {
			return reclassify(err, stackererrors.KindRejected)
		}
		return err
	}
	if pushStatusFlag(stdout, branch) == '=' && ObjectName(tip) != expectedRemote {
		msg := fmt.Sprintf("error: %s on %s is already at %s, expected %s (stale info)\n",
			branch.RefName(), remote, ObjectName(tip).Short(), expectedRemote.Short())
		return stackererrors.NewStatus(1, stdout, append(append([]byte(nil), stderr...), msg...)).
			WithKind(stackererrors.KindRejected)
	}
	return nil
}

// pushStatusFlag returns the porcelain status flag git reported for the
// destination of branch, or 0 when there is none.
func pushStatusFlag(porcelain []byte, branch Branch) byte {
	scanner := bufio.NewScanner(bytes.NewReader(porcelain))
	for scanner.Scan() {
		fields := bytes.Split(scanner.Bytes(), []byte("\t"))
		if len(fields) < 3 || len(fields[0]) != 1 {
			continue
		}
		if bytes.HasSuffix(fields[1], []byte(":"+branch.RefName())) {
			return fields[0][0]
		}
	}
	return 0
}

func isPushRejection(output []byte) bool {
	return bytes.Contains(output, []byte("stale info")) ||
		bytes.Contains(output, []byte("[rejected]")) ||
		bytes.Contains(output, []byte("[remote rejected]"))
}
